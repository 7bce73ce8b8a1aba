package translations

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/logging"
	"github.com/jonathan/portfolio-site/internal/schemas"
)

// Store holds the translation table for the session.
// Load replaces the table as a whole; lookups never observe a partial table.
type Store struct {
	source Source
	logger *slog.Logger

	mu     sync.RWMutex
	table  Table
	loaded bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates a Store reading from source. Until Load is called the
// store serves DefaultTable.
func NewStore(source Source, opts ...Option) *Store {
	s := &Store{
		source: source,
		table:  DefaultTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDefault(s.logger)
	return s
}

// NewStaticStore creates a Store serving a fixed table, for hosts that embed
// their translations in code and for tests. Codes are normalized and Load is
// never needed.
func NewStaticStore(table Table) *Store {
	return &Store{
		logger: slog.Default(),
		table:  table.Normalized(),
		loaded: true,
	}
}

// Load reads, decodes and validates the source. It never fails: on any
// problem the failure is logged and DefaultTable is installed instead.
func (s *Store) Load(ctx context.Context) Table {
	table, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("Error loading languages, using built-in default", "error", err)
		table = DefaultTable()
	}

	s.mu.Lock()
	s.table = table
	s.loaded = err == nil
	s.mu.Unlock()

	return table.Clone()
}

func (s *Store) read(ctx context.Context) (Table, error) {
	if s.source == nil {
		return nil, &LoadError{Source: "(none)", Message: "no translation source configured"}
	}
	name := s.source.Name()

	data, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: name, Message: "fetch failed", Cause: err}
	}

	table, err := Decode(data, FormatFor(name))
	if err != nil {
		return nil, &LoadError{Source: name, Message: "decode failed", Cause: err}
	}

	table = s.usable(name, table).Normalized()
	if len(table) == 0 {
		return nil, &LoadError{Source: name, Message: "no usable languages"}
	}
	return table, nil
}

// usable drops the languages that fail the schema, logging each one, and
// keeps the rest.
func (s *Store) usable(name string, table Table) Table {
	out := make(Table, len(table))
	for _, code := range table.Languages() {
		entries := table[code]
		if err := schemas.ValidateTranslations(Table{code: entries}); err != nil {
			s.logger.Warn("Skipping invalid language", "source", name, "language", code, "error", err)
			continue
		}
		out[code] = entries
	}
	return out
}

// Loaded reports whether the last Load used the real source rather than the default.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Get returns the text for key in the given language. Empty values count as absent.
func (s *Store) Get(code, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.table[locale.Normalize(code)]
	if !ok {
		return "", false
	}
	v, ok := entries[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Language returns a copy of one language's entries.
func (s *Store) Language(code string) (map[string]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.table[locale.Normalize(code)]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		out[k] = v
	}
	return out, true
}

// HasLanguage reports whether the table has entries for code.
func (s *Store) HasLanguage(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.table[locale.Normalize(code)]
	return ok
}

// Languages returns the sorted language codes in the current table.
func (s *Store) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Languages()
}

// Table returns a copy of the current table.
func (s *Store) Table() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}
