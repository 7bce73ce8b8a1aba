package localization

import (
	"fmt"

	"github.com/jonathan/portfolio-site/internal/prefs"
)

// Theme is the color scheme of the page.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// BodyClass is the class applied to the body element.
func (t Theme) BodyClass() string {
	return string(t) + "-theme"
}

// Icon is the toggle icon: a moon offers the dark theme, a sun the light one.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "fas fa-sun"
	}
	return "fas fa-moon"
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeController reads and flips the persisted theme.
type ThemeController struct {
	store prefs.Store
}

// NewThemeController creates a controller over store.
func NewThemeController(store prefs.Store) *ThemeController {
	return &ThemeController{store: store}
}

// Current returns the persisted theme, light when unset or unknown.
func (c *ThemeController) Current() Theme {
	if t, ok := ParseTheme(prefs.GetOr(c.store, prefs.ThemeKey, "")); ok {
		return t
	}
	return ThemeLight
}

// Toggle flips and persists the theme.
func (c *ThemeController) Toggle() (Theme, error) {
	next := c.Current().Toggled()
	if err := c.Set(next); err != nil {
		return c.Current(), err
	}
	return next, nil
}

// Set persists t.
func (c *ThemeController) Set(t Theme) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Set(prefs.ThemeKey, string(t)); err != nil {
		return fmt.Errorf("failed to persist theme %q: %w", t, err)
	}
	return nil
}

// Apply shows the current theme on view.
func (c *ThemeController) Apply(view ThemeView) Theme {
	t := c.Current()
	view.SetTheme(t, t.Icon())
	return t
}
