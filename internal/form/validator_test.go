package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-site/internal/translations"
)

func frenchMessages() Messages {
	return translations.NewStaticStore(translations.Table{
		"fr": {
			"error-name-required": "Le nom est requis",
			"error-email-invalid": "Veuillez saisir une adresse e-mail valide",
		},
	})
}

func TestValidateField_Name(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name    string
		value   string
		wantKey string
	}{
		{"empty", "", "error-name-required"},
		{"whitespace only", "   ", "error-name-required"},
		{"one character", "A", "error-name-short"},
		{"one character padded", "  A  ", "error-name-short"},
		{"two characters", "Al", ""},
		{"two runes", "مص", ""},
		{"single emoji", "😀", "error-name-short"},
		{"two emoji", "😀😀", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateField("en", FieldName, tt.value)
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantKey, fe.Key)
			assert.Equal(t, FieldName, fe.Field)
		})
	}
}

func TestValidateField_Email(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		value   string
		wantKey string
	}{
		{"", "error-email-required"},
		{"a@b.com", ""},
		{"  a@b.com  ", ""},
		{"a@b", "error-email-invalid"},
		{"a b@c.com", "error-email-invalid"},
		{"a@@b.com", "error-email-invalid"},
		{"@b.com", "error-email-invalid"},
		{"plainaddress", "error-email-invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := v.ValidateField("en", FieldEmail, tt.value)
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantKey, fe.Key)
		})
	}
}

func TestValidateField_Message(t *testing.T) {
	v := NewValidator(nil)

	err := v.ValidateField("en", FieldMessage, "")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "error-message-required", fe.Key)

	err = v.ValidateField("en", FieldMessage, "123456789")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "error-message-short", fe.Key)

	assert.NoError(t, v.ValidateField("en", FieldMessage, "1234567890"))
	assert.NoError(t, v.ValidateField("en", FieldMessage, "  1234567890  "))
}

func TestValidateField_NilOnSuccess(t *testing.T) {
	v := NewValidator(nil)
	err := v.ValidateField("en", FieldName, "Alice")
	assert.True(t, err == nil, "valid field must return an untyped nil error")
}

func TestValidateField_LocalizedMessages(t *testing.T) {
	v := NewValidator(frenchMessages())

	err := v.ValidateField("fr", FieldName, "")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Le nom est requis", fe.Message)

	// Missing French key falls back to English.
	err = v.ValidateField("fr", FieldName, "A")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Name must be at least 2 characters", fe.Message)

	// Unknown language falls back too.
	err = v.ValidateField("de", FieldEmail, "nope")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Please enter a valid email address", fe.Message)
}

func TestText_UnknownKey(t *testing.T) {
	v := NewValidator(nil)
	assert.Equal(t, "no-such-key", v.Text("en", "no-such-key"))
	assert.Equal(t, "Sending...", v.Text("en", "sending"))
}

func TestBlur(t *testing.T) {
	v := NewValidator(nil)
	state := NewState("A", "", "")

	assert.False(t, v.Blur("en", state, FieldName))
	msg, ok := state.Error(FieldName)
	require.True(t, ok)
	assert.Equal(t, "Name must be at least 2 characters", msg)

	state.SetValue(FieldName, "Alice")
	// The error stays until the field is validated again.
	_, ok = state.Error(FieldName)
	assert.True(t, ok)

	assert.True(t, v.Blur("en", state, FieldName))
	_, ok = state.Error(FieldName)
	assert.False(t, ok)
}

func TestValidateAll_ReportsEveryField(t *testing.T) {
	v := NewValidator(nil)
	state := NewState("", "a@b", "short")

	assert.False(t, v.ValidateAll("en", state))
	errs := state.Errors()
	assert.Len(t, errs, 3)
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.Equal(t, "Message must be at least 10 characters", errs["message"])
}

func TestValidateAll_Valid(t *testing.T) {
	v := NewValidator(nil)
	state := NewState("Alice", "alice@example.com", "Hello there, friend")

	assert.True(t, v.ValidateAll("en", state))
	assert.Empty(t, state.Errors())
}

func TestState_Reset(t *testing.T) {
	state := NewState(" Alice ", "a@b.com", "message body")
	state.setError(FieldName, "x")

	assert.Equal(t, "Alice", state.Trimmed(FieldName))
	assert.Equal(t, " Alice ", state.Value(FieldName))

	state.Reset()
	for _, f := range Fields {
		assert.Empty(t, state.Value(f))
	}
	assert.Empty(t, state.Errors())
}
