package server

import (
	"net/http"

	"github.com/jonathan/portfolio-site/internal/cv"
	"github.com/jonathan/portfolio-site/internal/server/middleware"
)

// handleCV downloads the HTML CV for the path language.
func (s *Server) handleCV(w http.ResponseWriter, r *http.Request) {
	doc, err := s.deps.CV.Generate(r.PathValue("lang"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.deliver(w, r, doc.Artifact())
}

// handleCVPDF downloads the CV printed to PDF.
func (s *Server) handleCVPDF(w http.ResponseWriter, r *http.Request) {
	if s.cfg.PDF == nil {
		err := &ErrPDFDisabled{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	doc, err := s.deps.CV.Generate(r.PathValue("lang"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	art, err := s.renderPDF(r.Context(), doc, s.cfg.PDF)
	if err != nil {
		s.logger.Error("Error printing CV",
			"request_id", middleware.RequestIDFrom(r.Context()),
			"language", doc.Language,
			"error", err)
		s.errorResponse(w, HTTPStatus(err), "failed to print CV")
		return
	}
	s.deliver(w, r, art)
}

func (s *Server) deliver(w http.ResponseWriter, r *http.Request, art cv.Artifact) {
	if err := cv.Deliver(art, cv.HTTPSink{W: w}); err != nil {
		// Headers are already sent.
		s.logger.Error("Error delivering CV",
			"request_id", middleware.RequestIDFrom(r.Context()),
			"filename", art.Filename,
			"error", err)
	}
}
