package form

import "strings"

// State holds the current values and displayed errors of the form.
type State struct {
	values map[Field]string
	errors map[Field]string
}

// NewState creates a form state with the given values.
func NewState(name, email, message string) *State {
	return &State{
		values: map[Field]string{
			FieldName:    name,
			FieldEmail:   email,
			FieldMessage: message,
		},
		errors: make(map[Field]string),
	}
}

// Value returns the raw value of field.
func (s *State) Value(field Field) string {
	return s.values[field]
}

// Trimmed returns the value of field without surrounding whitespace.
func (s *State) Trimmed(field Field) string {
	return strings.TrimSpace(s.values[field])
}

// SetValue updates a field value. The displayed error is kept until the next validation.
func (s *State) SetValue(field Field, value string) {
	s.values[field] = value
}

// Error returns the displayed error of field, if any.
func (s *State) Error(field Field) (string, bool) {
	msg, ok := s.errors[field]
	return msg, ok
}

// Errors returns a copy of the displayed errors keyed by field name.
func (s *State) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for f, msg := range s.errors {
		out[string(f)] = msg
	}
	return out
}

// ClearErrors removes every displayed error.
func (s *State) ClearErrors() {
	s.errors = make(map[Field]string)
}

// Reset empties values and errors, as after a successful submission.
func (s *State) Reset() {
	for _, f := range Fields {
		s.values[f] = ""
	}
	s.ClearErrors()
}

func (s *State) setError(field Field, msg string) {
	s.errors[field] = msg
}

func (s *State) clearError(field Field) {
	delete(s.errors, field)
}
