// Package form validates the contact form and runs its (simulated) submission.
package form

import "fmt"

// FieldError is a failed validation rule on one field. Message is already
// localized for display next to the field.
type FieldError struct {
	Field   Field
	Key     string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// InvalidFormError is returned by Submit when validation blocked submission.
type InvalidFormError struct {
	Fields []Field
}

func (e *InvalidFormError) Error() string {
	return fmt.Sprintf("form has %d invalid field(s): %v", len(e.Fields), e.Fields)
}

// SubmissionError represents a failed delivery of a valid form.
type SubmissionError struct {
	Message string
	Cause   error
}

func (e *SubmissionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("submission error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("submission error: %s", e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
