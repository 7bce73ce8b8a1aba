package translations

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jonathan/portfolio-site/internal/locale"
)

// Table maps a language code to its key -> text mapping.
type Table map[string]map[string]string

// DefaultTable is installed whenever the real table cannot be loaded.
// It carries just enough to render the owner's name and the loading screen.
func DefaultTable() Table {
	return Table{
		locale.DefaultCode: {
			"name":    "Moussaab Boucetta",
			"loading": "Loading...",
		},
	}
}

// Languages returns the language codes in the table, sorted.
func (t Table) Languages() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for code, entries := range t {
		copied := make(map[string]string, len(entries))
		for k, v := range entries {
			copied[k] = v
		}
		out[code] = copied
	}
	return out
}

// Normalized returns a copy of the table with language codes normalized.
// When two codes collapse to the same language their entries are merged,
// the later code in sorted order winning on conflicts.
func (t Table) Normalized() Table {
	out := make(Table, len(t))
	for _, code := range t.Languages() {
		norm := locale.Normalize(code)
		if norm == "" {
			continue
		}
		dst, ok := out[norm]
		if !ok {
			dst = make(map[string]string, len(t[code]))
			out[norm] = dst
		}
		for k, v := range t[code] {
			dst[k] = v
		}
	}
	return out
}

// Format is the encoding of a translation resource.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a resource name's extension. Anything that
// is not .toml is treated as JSON, which is what the site ships.
func FormatFor(name string) Format {
	name = strings.SplitN(name, "?", 2)[0]
	if strings.EqualFold(path.Ext(name), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Decode parses raw translation data in the given format.
func Decode(data []byte, format Format) (Table, error) {
	var table Table
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse translation TOML: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse translation JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported translation format %q", format)
	}
	return table, nil
}
