package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/jonathan/portfolio-site/internal/form"
	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/prefs"
)

// contactLanguage is the request's language, or the resolved page language.
func (s *Server) contactLanguage(w http.ResponseWriter, r *http.Request, req *contactRequest) string {
	if req.Language != "" {
		return locale.Normalize(req.Language)
	}
	return s.resolveLanguage(r, prefs.NewCookieStore(w, r, s.cfg.SecureCookies))
}

// handleContact validates and submits the contact form in one response.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	lang := s.contactLanguage(w, r, &req)
	state := form.NewState(req.Name, req.Email, req.Message)
	ui := &form.RecordingUI{}

	receipt, err := s.deps.Contact.Submit(r.Context(), lang, state, ui)
	if err != nil {
		var invalid *form.InvalidFormError
		if errors.As(err, &invalid) {
			s.jsonResponse(w, HTTPStatus(err), map[string]any{
				"error":  "validation_failed",
				"errors": state.Errors(),
			})
			return
		}
		s.errorResponse(w, HTTPStatus(err), ui.Message)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":           receipt.ID,
		"message":      ui.Message,
		"submitted_at": receipt.SubmittedAt.Format(time.RFC3339),
	})
}

// sseUI relays the submission progress as server-sent events.
type sseUI struct {
	sse *SSEWriter
}

func (u *sseUI) Busy(label string) {
	u.sse.WriteEvent("busy", map[string]string{"label": label}) //nolint:errcheck
}

func (u *sseUI) Success(message string) {
	u.sse.WriteEvent("success", map[string]string{"message": message}) //nolint:errcheck
}

func (u *sseUI) Alert(message string) {
	u.sse.WriteEvent("alert", map[string]string{"message": message}) //nolint:errcheck
}

func (u *sseUI) Restore() {
	u.sse.WriteEvent("restore", map[string]bool{"enabled": true}) //nolint:errcheck
}

// handleContactStream submits the contact form and streams each UI step.
func (s *Server) handleContactStream(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	lang := s.contactLanguage(w, r, &req)

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	state := form.NewState(req.Name, req.Email, req.Message)
	receipt, err := s.deps.Contact.Submit(r.Context(), lang, state, &sseUI{sse: sse})
	if err != nil {
		var invalid *form.InvalidFormError
		if errors.As(err, &invalid) {
			sse.WriteEvent("invalid", map[string]any{"errors": state.Errors()}) //nolint:errcheck
			sse.WriteComplete("", "invalid")
			return
		}
		sse.WriteComplete("", "failed")
		return
	}
	sse.WriteComplete(receipt.ID, "sent")
}
