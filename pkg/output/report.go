package output

import (
	"bytes"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/MaxGeldner/gulp-include-source/pkg/logging"
	"github.com/MaxGeldner/gulp-include-source/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Summary describes one completed batch.
type Summary struct {
	Processed int
	Written   []string
	Errors    []error
	Duration  time.Duration
}

const summaryTemplate = `{{ if .Errors }}{{ style "Error" "Failed" }}{{ else }}{{ style "Success" "Done" }}{{ end }} {{ .Processed }} file(s) in {{ .Duration }}
{{- range .Written }}
  {{ style "FilePath" . }}
{{- end }}
{{- range .Errors }}
  {{ style "Error" "error:" }} {{ .Error }}
{{- end }}
`

// Renderer writes styled run reports.
type Renderer struct {
	writer   io.Writer
	noColor  bool
	renderer *lipgloss.Renderer
	tmpl     *template.Template
}

// NewRenderer creates a Renderer. With noColor, or when the environment asks
// for no color (NO_COLOR, CLICOLOR=0), all styling is dropped.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	log := logging.GetLogger("output.Renderer")

	if termenv.EnvNoColor() {
		noColor = true
	}

	r := &Renderer{writer: w, noColor: noColor, renderer: lipgloss.NewRenderer(w)}
	r.tmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
		"style": r.style,
	}).Parse(summaryTemplate))

	log.Debug().
		Bool("noColor", noColor).
		Str("colorProfile", fmt.Sprintf("%v", r.renderer.ColorProfile())).
		Msg("Renderer created")

	return r
}

// style applies a named style bound to the renderer's output.
func (r *Renderer) style(name, text string) string {
	if r.noColor {
		return text
	}
	return styles.GetStyle(name).Renderer(r.renderer).Render(text)
}

// RenderSummary prints the summary of a batch.
func (r *Renderer) RenderSummary(s Summary) error {
	s.Duration = s.Duration.Round(time.Millisecond)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, s); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err := io.Copy(r.writer, &buf)
	return err
}

// RenderError prints a single error with its code.
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.style("Error", "Error:"), err)
	return writeErr
}

// RenderMessage prints a message in the named style.
func (r *Renderer) RenderMessage(style, message string) error {
	_, err := fmt.Fprintln(r.writer, r.style(style, message))
	return err
}
