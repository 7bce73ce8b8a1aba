package form

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field is one of the three contact form fields.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Length rules, counted in characters after trimming.
const (
	MinNameLength    = 2
	MinMessageLength = 10
)

// emailPattern requires non-whitespace around a single @ and a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Translation keys of the error messages, with their English fallbacks.
var fallbackMessages = map[string]string{
	"error-name-required":    "Name is required",
	"error-name-short":       "Name must be at least 2 characters",
	"error-email-required":   "Email is required",
	"error-email-invalid":    "Please enter a valid email address",
	"error-message-required": "Message is required",
	"error-message-short":    "Message must be at least 10 characters",
	"error-submission":       "There was an error sending your message. Please try again.",
	"sending":                "Sending...",
	"success-message":        "Thank you! Your message has been sent.",
}

// Messages resolves user-facing text.
type Messages interface {
	Get(code, key string) (string, bool)
}

// Validator checks form fields and localizes the failures.
type Validator struct {
	messages Messages
}

// NewValidator creates a Validator. messages may be nil, in which case the
// English fallbacks are used.
func NewValidator(messages Messages) *Validator {
	return &Validator{messages: messages}
}

// Text returns the translation of key in lang, or its built-in fallback.
func (v *Validator) Text(lang, key string) string {
	if v.messages != nil {
		if s, ok := v.messages.Get(lang, key); ok {
			return s
		}
	}
	if s, ok := fallbackMessages[key]; ok {
		return s
	}
	return key
}

// ValidateField checks value against field's rules. It returns nil when the
// value is valid and a *FieldError otherwise.
func (v *Validator) ValidateField(lang string, field Field, value string) error {
	if fe := v.check(lang, field, value); fe != nil {
		return fe
	}
	return nil
}

func (v *Validator) check(lang string, field Field, value string) *FieldError {
	key := ruleFailure(field, strings.TrimSpace(value))
	if key == "" {
		return nil
	}
	return &FieldError{Field: field, Key: key, Message: v.Text(lang, key)}
}

// ruleFailure returns the translation key of the first failing rule, or "".
func ruleFailure(field Field, value string) string {
	switch field {
	case FieldName:
		if value == "" {
			return "error-name-required"
		}
		if utf8.RuneCountInString(value) < MinNameLength {
			return "error-name-short"
		}
	case FieldEmail:
		if value == "" {
			return "error-email-required"
		}
		if !emailPattern.MatchString(value) {
			return "error-email-invalid"
		}
	case FieldMessage:
		if value == "" {
			return "error-message-required"
		}
		if utf8.RuneCountInString(value) < MinMessageLength {
			return "error-message-short"
		}
	}
	return ""
}

// Blur validates one field of state, showing or clearing its error.
func (v *Validator) Blur(lang string, state *State, field Field) bool {
	if fe := v.check(lang, field, state.Value(field)); fe != nil {
		state.setError(field, fe.Message)
		return false
	}
	state.clearError(field)
	return true
}

// ValidateAll validates every field, so that all errors are shown at once,
// and reports whether the form may be submitted.
func (v *Validator) ValidateAll(lang string, state *State) bool {
	valid := true
	for _, field := range Fields {
		if !v.Blur(lang, state, field) {
			valid = false
		}
	}
	return valid
}
