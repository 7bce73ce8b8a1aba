// Package cv generates the downloadable resume document.
package cv

import (
	"fmt"
	"strings"
)

// MissingTranslationError is returned when a language lacks the keys a
// document cannot be produced without.
type MissingTranslationError struct {
	Language string
	Keys     []string
}

func (e *MissingTranslationError) Error() string {
	return fmt.Sprintf("missing translation for %q: %s", e.Language, strings.Join(e.Keys, ", "))
}

// TemplateError represents an error executing the document template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// DeliveryError represents a failure handing an artifact to its sink.
type DeliveryError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("delivery error for %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("delivery error for %s: %s", e.Filename, e.Message)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// PDFError represents a failure printing a document with the headless browser.
type PDFError struct {
	Message string
	Cause   error
}

func (e *PDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf error: %s", e.Message)
}

func (e *PDFError) Unwrap() error {
	return e.Cause
}
