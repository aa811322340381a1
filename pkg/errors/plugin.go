package errors

import (
	"errors"
	"fmt"
)

// PluginName tags every error reported by the transform stage.
const PluginName = "gulp-include-source"

// PluginError is the envelope the pipeline emits for a failed file. Err is
// always an *IncludeError; conditions without a code arrive as ErrUnstructured.
type PluginError struct {
	Plugin string
	File   string
	Err    *IncludeError
}

// NewPluginError tags err with the plugin identity and the file it concerns.
func NewPluginError(file string, err error) *PluginError {
	if err == nil {
		return nil
	}
	var coded *IncludeError
	if !errors.As(err, &coded) {
		coded = Wrap(err, ErrUnstructured, "transform failed")
	}
	return &PluginError{
		Plugin: PluginName,
		File:   file,
		Err:    coded,
	}
}

func (e *PluginError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %v", e.Plugin, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Plugin, e.File, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// Code returns the code of the wrapped IncludeError.
func (e *PluginError) Code() ErrorCode {
	return e.Err.Code
}
