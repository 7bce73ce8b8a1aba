package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/portfolio-site/internal/localization"
	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/prefs"
	"github.com/jonathan/portfolio-site/internal/server/middleware"
)

// localizedPage is the result of rendering the page for one request.
type localizedPage struct {
	HTML   string
	State  locale.State
	Report localization.Report
	Theme  localization.Theme
}

// renderPage localizes the page in code, persisting the choice in store.
func (s *Server) renderPage(r *http.Request, store prefs.Store, code string) (*localizedPage, error) {
	view, err := localization.ParseHTML(bytes.NewReader(s.cfg.Page))
	if err != nil {
		return nil, err
	}

	state, report, err := s.deps.Engine.WithStore(store).SetLanguage(view, code)
	if err != nil {
		s.logger.Warn("Failed to persist language",
			"request_id", middleware.RequestIDFrom(r.Context()),
			"error", err)
	}

	theme := localization.NewThemeController(store).Apply(view)
	view.SetAttr("#download-cv", "href", "/cv/"+state.Code)

	html, err := view.Render()
	if err != nil {
		return nil, err
	}
	return &localizedPage{HTML: html, State: state, Report: report, Theme: theme}, nil
}

// handlePage serves the localized portfolio page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	store := prefs.NewCookieStore(w, r, s.cfg.SecureCookies)
	code := s.resolveLanguage(r, store)

	page, err := s.renderPage(r, store, code)
	if err != nil {
		s.logger.Error("Error rendering page", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", page.State.Code)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page.HTML))
}

// handleLanguages serves the loaded translation table.
func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.deps.Translations.Table())
}

// handleSetLanguage switches the persisted language and reports the result.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	store := prefs.NewCookieStore(w, r, s.cfg.SecureCookies)
	page, err := s.renderPage(r, store, req.Language)
	if err != nil {
		s.logger.Error("Error rendering page", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"language":    page.State.Code,
		"direction":   page.State.Direction,
		"table_found": page.Report.TableFound,
		"applied":     page.Report.Applied,
		"missing":     page.Report.Missing,
	})
}

// handleToggleTheme flips the persisted theme.
func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	store := prefs.NewCookieStore(w, r, s.cfg.SecureCookies)
	theme, err := localization.NewThemeController(store).Toggle()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"theme":      string(theme),
		"body_class": theme.BodyClass(),
		"icon":       theme.Icon(),
	})
}
