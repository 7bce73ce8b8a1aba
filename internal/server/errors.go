package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-site/internal/cv"
	"github.com/jonathan/portfolio-site/internal/form"
)

// ErrValidation indicates a malformed request.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPDFDisabled indicates the server was started without PDF export.
type ErrPDFDisabled struct{}

func (e *ErrPDFDisabled) Error() string {
	return "PDF export is not enabled"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		invalid    *form.InvalidFormError
		missing    *cv.MissingTranslationError
		submission *form.SubmissionError
		pdf        *cv.PDFError
		disabled   *ErrPDFDisabled
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &invalid), errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &submission):
		return http.StatusBadGateway
	case errors.As(err, &disabled):
		return http.StatusNotImplemented
	case errors.As(err, &pdf):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
