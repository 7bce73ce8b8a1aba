package cv

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Artifact is a named file ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Sink receives a generated artifact.
type Sink interface {
	Write(a Artifact) error
}

// Deliver hands a to sink. It is the only step of CV generation with side effects.
func Deliver(a Artifact, sink Sink) error {
	if a.Filename == "" {
		return &DeliveryError{Filename: "(unnamed)", Message: "artifact has no filename"}
	}
	if err := sink.Write(a); err != nil {
		return &DeliveryError{Filename: a.Filename, Message: "sink rejected artifact", Cause: err}
	}
	return nil
}

// HTTPSink sends artifacts as attachment responses.
type HTTPSink struct {
	W http.ResponseWriter
}

// Write implements Sink.
func (s HTTPSink) Write(a Artifact) error {
	h := s.W.Header()
	h.Set("Content-Type", a.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	h.Set("Content-Length", strconv.Itoa(len(a.Data)))
	s.W.WriteHeader(http.StatusOK)
	_, err := s.W.Write(a.Data)
	return err
}

// DirSink writes artifacts into a directory, creating it when needed.
type DirSink struct {
	Dir string
}

// Path returns where an artifact named filename is written.
func (s DirSink) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}

// Write implements Sink.
func (s DirSink) Write(a Artifact) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(s.Path(a.Filename), a.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
