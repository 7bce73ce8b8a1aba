package localization

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/portfolio-site/internal/locale"
)

// Selectors of the page conventions.
const (
	TranslationAttr   = "data-lang"
	LanguageCodeAttr  = "data-lang-code"
	languageButtonSel = ".lang-btn"
	themeIconSel      = "#theme-toggle i"
	activeClass       = "active"
)

// HTMLView is a ViewPort over a parsed HTML page.
type HTMLView struct {
	doc *goquery.Document
}

// ParseHTML parses a page into a view.
func ParseHTML(r io.Reader) (*HTMLView, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLView{doc: doc}, nil
}

// ParseHTMLString parses page markup held in a string.
func ParseHTMLString(s string) (*HTMLView, error) {
	return ParseHTML(strings.NewReader(s))
}

// TaggedElements implements ViewPort.
func (v *HTMLView) TaggedElements() []Element {
	sel := v.doc.Find("[" + TranslationAttr + "]")
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &htmlElement{sel: s})
	})
	return out
}

// SetDocumentLocale implements ViewPort. The body also gets a lang-<code> class.
func (v *HTMLView) SetDocumentLocale(code string, dir locale.Direction) {
	v.doc.Find("html").SetAttr("lang", code).SetAttr("dir", string(dir))
	replaceClass(v.doc.Find("body"), func(c string) bool {
		return strings.HasPrefix(c, "lang-")
	}, "lang-"+code)
}

// MarkActiveLanguage implements ViewPort.
func (v *HTMLView) MarkActiveLanguage(code string) {
	v.doc.Find(languageButtonSel).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr(LanguageCodeAttr, "") == code {
			s.AddClass(activeClass)
		} else {
			s.RemoveClass(activeClass)
		}
	})
}

// SetTheme implements ThemeView.
func (v *HTMLView) SetTheme(theme Theme, icon string) {
	replaceClass(v.doc.Find("body"), func(c string) bool {
		return strings.HasSuffix(c, "-theme")
	}, theme.BodyClass())
	v.doc.Find(themeIconSel).SetAttr("class", icon)
}

// SetAttr sets an attribute on every element matching selector.
func (v *HTMLView) SetAttr(selector, name, value string) {
	v.doc.Find(selector).SetAttr(name, value)
}

// Find exposes the underlying selection, mostly for inspection in tests and commands.
func (v *HTMLView) Find(selector string) *goquery.Selection {
	return v.doc.Find(selector)
}

// Render serializes the page.
func (v *HTMLView) Render() (string, error) {
	html, err := v.doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return html, nil
}

// replaceClass drops the classes matching drop and adds add.
func replaceClass(sel *goquery.Selection, drop func(string) bool, add string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		kept := []string{}
		for _, c := range strings.Fields(s.AttrOr("class", "")) {
			if !drop(c) {
				kept = append(kept, c)
			}
		}
		kept = append(kept, add)
		s.SetAttr("class", strings.Join(kept, " "))
	})
}

type htmlElement struct {
	sel *goquery.Selection
}

func (e *htmlElement) Key() string {
	return e.sel.AttrOr(TranslationAttr, "")
}

func (e *htmlElement) Tag() string {
	return strings.ToLower(goquery.NodeName(e.sel))
}

func (e *htmlElement) Type() string {
	return e.sel.AttrOr("type", "")
}

func (e *htmlElement) Text() string {
	return e.sel.Text()
}

func (e *htmlElement) SetText(text string) {
	e.sel.SetText(text)
}

func (e *htmlElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *htmlElement) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}
