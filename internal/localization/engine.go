package localization

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/logging"
	"github.com/jonathan/portfolio-site/internal/prefs"
)

// Lookup is the part of the translation store the engine needs.
type Lookup interface {
	HasLanguage(code string) bool
	Get(code, key string) (string, bool)
}

// Report summarizes one localization pass.
type Report struct {
	Language   string
	TableFound bool
	Applied    int
	Missing    []string
}

// Engine applies a language to a view port and persists the choice.
type Engine struct {
	lookup Lookup
	store  prefs.Store
	logger *slog.Logger
}

// NewEngine creates an Engine. store may be nil, in which case nothing is persisted.
func NewEngine(lookup Lookup, store prefs.Store, logger *slog.Logger) *Engine {
	return &Engine{lookup: lookup, store: store, logger: logging.OrDefault(logger)}
}

// WithStore returns a copy of the engine persisting to store. The server uses
// it to bind one engine to each request's cookie store.
func (e *Engine) WithStore(store prefs.Store) *Engine {
	cp := *e
	cp.store = store
	return &cp
}

// SetLanguage switches view to code.
//
// The document language, direction and active language control are always
// updated and the code is always persisted. When the store has no table for
// code, no tagged element is touched. Missing keys leave their element as is.
// The returned error only reports a persistence failure; the view has been
// updated by then.
func (e *Engine) SetLanguage(view ViewPort, code string) (locale.State, Report, error) {
	state := locale.NewState(code)
	report := Report{Language: state.Code}

	view.SetDocumentLocale(state.Code, state.Direction)
	view.MarkActiveLanguage(state.Code)

	if e.lookup.HasLanguage(state.Code) {
		report.TableFound = true
		for _, el := range view.TaggedElements() {
			key := el.Key()
			text, ok := e.lookup.Get(state.Code, key)
			if !ok {
				report.Missing = append(report.Missing, key)
				e.logger.Warn("Translation not found", "key", key, "language", state.Code)
				continue
			}
			Apply(el, text)
			report.Applied++
		}
	} else {
		e.logger.Warn("Language data not found", "language", state.Code)
	}

	if e.store != nil {
		if err := e.store.Set(prefs.LanguageKey, state.Code); err != nil {
			return state, report, fmt.Errorf("failed to persist language %q: %w", state.Code, err)
		}
	}

	return state, report, nil
}

// Current returns the persisted language, or locale.DefaultCode.
func (e *Engine) Current() string {
	return locale.Normalize(prefs.GetOr(e.store, prefs.LanguageKey, locale.DefaultCode))
}

// Restore applies the persisted language to view.
func (e *Engine) Restore(view ViewPort) (locale.State, Report, error) {
	return e.SetLanguage(view, e.Current())
}
