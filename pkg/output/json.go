package output

import (
	stderrors "errors"
	"io"
	"time"

	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
	json "github.com/goccy/go-json"
)

// Reporter is what the CLI prints batch results through.
type Reporter interface {
	RenderSummary(s Summary) error
	RenderError(err error) error
	RenderMessage(style, message string) error
}

var (
	_ Reporter = (*Renderer)(nil)
	_ Reporter = (*JSONRenderer)(nil)
)

// JSONRenderer emits one JSON object per line for machine consumption.
type JSONRenderer struct {
	encoder *json.Encoder
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{encoder: json.NewEncoder(w)}
}

type jsonError struct {
	Code    errors.ErrorCode `json:"code"`
	File    string           `json:"file,omitempty"`
	Message string           `json:"message"`
}

type jsonSummary struct {
	Processed  int         `json:"processed"`
	Written    []string    `json:"written"`
	Errors     []jsonError `json:"errors"`
	DurationMS int64       `json:"duration_ms"`
}

func toJSONError(err error) jsonError {
	out := jsonError{Code: errors.GetErrorCode(err), Message: err.Error()}

	var pluginErr *errors.PluginError
	if stderrors.As(err, &pluginErr) {
		out.File = pluginErr.File
		out.Message = pluginErr.Err.Message
		if pluginErr.Err.Wrapped != nil {
			out.Message += ": " + pluginErr.Err.Wrapped.Error()
		}
	}
	return out
}

// RenderSummary encodes the batch summary.
func (r *JSONRenderer) RenderSummary(s Summary) error {
	out := jsonSummary{
		Processed:  s.Processed,
		Written:    s.Written,
		Errors:     make([]jsonError, 0, len(s.Errors)),
		DurationMS: s.Duration.Round(time.Millisecond).Milliseconds(),
	}
	if out.Written == nil {
		out.Written = []string{}
	}
	for _, err := range s.Errors {
		out.Errors = append(out.Errors, toJSONError(err))
	}
	return r.encoder.Encode(out)
}

// RenderError encodes a single error.
func (r *JSONRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]jsonError{"error": toJSONError(err)})
}

// RenderMessage encodes a message; the style is ignored.
func (r *JSONRenderer) RenderMessage(_ string, message string) error {
	return r.encoder.Encode(map[string]string{"message": message})
}
