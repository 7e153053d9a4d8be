package pipeline

import "fmt"

// ConversionError reports which stage of a conversion failed. Err is the stage's own error,
// such as *sbom.ParseError or *rendering.RenderError.
type ConversionError struct {
	Stage Stage
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed at %s: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
