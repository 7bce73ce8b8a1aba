// Package locale models the active language and its text direction.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is the text direction of a document.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// RTLCode is the only language rendered right-to-left.
const RTLCode = "ar"

// DefaultCode is used when no language preference has been stored.
const DefaultCode = "en"

// State is the current language and its direction.
type State struct {
	Code      string    `json:"code"`
	Direction Direction `json:"direction"`
}

// NewState builds the state for code. The direction depends only on whether
// the normalized code is RTLCode.
func NewState(code string) State {
	code = Normalize(code)
	return State{Code: code, Direction: DirectionFor(code)}
}

// IsRTL reports whether the state renders right-to-left.
func (s State) IsRTL() bool {
	return s.Direction == RTL
}

// DirectionFor returns the text direction used for code.
func DirectionFor(code string) Direction {
	if Normalize(code) == RTLCode {
		return RTL
	}
	return LTR
}

// Normalize lowercases code and reduces a well-formed BCP 47 tag to its base
// language ("fr-CA" -> "fr", "pt_BR" -> "pt"). Codes that do not parse are
// only trimmed and lowercased.
func Normalize(code string) string {
	code = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "_", "-")
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	return base.String()
}

// Match picks the best supported language for an Accept-Language header.
// It returns false when the header is empty, malformed or matches nothing.
func Match(acceptLanguage string, supported []string) (string, bool) {
	if strings.TrimSpace(acceptLanguage) == "" || len(supported) == 0 {
		return "", false
	}

	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return "", false
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}

	_, index, confidence := language.NewMatcher(tags).Match(wanted...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return "", false
	}
	return supported[index], true
}
