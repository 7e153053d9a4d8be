// Package server provides the HTTP front-end that turns uploaded SBOMs into PDF reports.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/sbom-report/internal/rendering"
	"github.com/jonathan/sbom-report/internal/sbom"
)

// ErrUpload indicates a missing or unusable upload
type ErrUpload struct {
	Message string
	Cause   error
}

func (e *ErrUpload) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upload error: %s", e.Message)
}

func (e *ErrUpload) Unwrap() error {
	return e.Cause
}

// ErrTooLarge indicates the request body exceeded the upload limit
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds the %d byte limit", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		tooLarge  *ErrTooLarge
		upload    *ErrUpload
		parseErr  *sbom.ParseError
		renderErr *rendering.RenderError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &upload), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &renderErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text shown to clients. Server-side failures are not detailed.
func publicMessage(err error) string {
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return "failed to generate PDF"
	}
	return err.Error()
}
