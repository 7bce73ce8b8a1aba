package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/prefs"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

var validate = validator.New(validator.WithRequiredStructEnabled())

// languageRequest is the body of POST /language.
type languageRequest struct {
	Language string `json:"language" validate:"required,bcp47_language_tag"`
}

// contactRequest is the body of the contact endpoints. Content rules are
// checked by the form validator; only the request shape is checked here.
type contactRequest struct {
	Name     string `json:"name"     validate:"max=200"`
	Email    string `json:"email"    validate:"max=320"`
	Message  string `json:"message"  validate:"max=5000"`
	Language string `json:"language" validate:"omitempty,bcp47_language_tag"`
}

// decodeRequest reads a JSON or form-encoded body into dst and validates it.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return &ErrValidation{Field: "body", Message: "invalid form body"}
		}
		decodeForm(r, dst)
	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "invalid JSON body"}
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ErrValidation{Field: strings.ToLower(verrs[0].Field()), Message: "failed " + verrs[0].Tag() + " check"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func decodeForm(r *http.Request, dst any) {
	switch v := dst.(type) {
	case *languageRequest:
		v.Language = r.PostFormValue("language")
	case *contactRequest:
		v.Name = r.PostFormValue("name")
		v.Email = r.PostFormValue("email")
		v.Message = r.PostFormValue("message")
		v.Language = r.PostFormValue("language")
	}
}

// resolveLanguage picks the page language: ?lang=, then the preference
// cookie, then Accept-Language, then the configured default.
func (s *Server) resolveLanguage(r *http.Request, store prefs.Store) string {
	if q := r.URL.Query().Get("lang"); q != "" {
		return locale.Normalize(q)
	}
	if v, ok := store.Get(prefs.LanguageKey); ok && v != "" {
		return locale.Normalize(v)
	}
	if code, ok := locale.Match(r.Header.Get("Accept-Language"), s.deps.Translations.Languages()); ok {
		return code
	}
	return locale.Normalize(s.cfg.DefaultLanguage)
}
