// Package localization rewrites tagged page content for the selected language
// and keeps the language and theme preferences.
package localization

import (
	"strings"

	"github.com/jonathan/portfolio-site/internal/locale"
)

// Element is one content-bearing element opted into translation.
type Element interface {
	// Key is the translation key the element is tagged with.
	Key() string
	// Tag is the lowercase element name ("input", "textarea", "h1", ...).
	Tag() string
	// Type is the element's type attribute, empty when unset.
	Type() string
	Text() string
	SetText(text string)
	Attr(name string) (string, bool)
	SetAttr(name, value string)
}

// ViewPort is the surface the engine reads from and writes to.
type ViewPort interface {
	// TaggedElements lists every element carrying a translation key.
	TaggedElements() []Element
	// SetDocumentLocale sets the document language and direction.
	SetDocumentLocale(code string, dir locale.Direction)
	// MarkActiveLanguage highlights the control for code and clears the others.
	MarkActiveLanguage(code string)
}

// ThemeView is implemented by view ports that can show the theme.
type ThemeView interface {
	SetTheme(theme Theme, icon string)
}

// PlaceholderAttr receives the translation for form fields.
const PlaceholderAttr = "placeholder"

// receivesPlaceholder reports whether el shows its translation as a placeholder:
// textareas and inputs other than submit buttons.
func receivesPlaceholder(el Element) bool {
	switch strings.ToLower(el.Tag()) {
	case "textarea":
		return true
	case "input":
		return !strings.EqualFold(el.Type(), "submit")
	default:
		return false
	}
}

// Apply writes text into el the way the engine would.
func Apply(el Element, text string) {
	if receivesPlaceholder(el) {
		el.SetAttr(PlaceholderAttr, text)
		return
	}
	el.SetText(text)
}
