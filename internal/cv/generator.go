package cv

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/logging"
)

//go:embed templates/cv.html
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("cv.html").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/cv.html"),
)

// ContentType is the media type of generated documents.
const ContentType = "text/html; charset=utf-8"

// Extension is the file extension of generated documents.
const Extension = ".html"

// EssentialKeys must be translated for a document to be produced.
var EssentialKeys = []string{"name", "title"}

// Lookup is the part of the translation store the generator reads.
type Lookup interface {
	Language(code string) (map[string]string, bool)
}

// Profile holds the untranslated parts of the document.
type Profile struct {
	// BaseName prefixes every generated filename.
	BaseName string
	// Contact lines shown under the title, in order.
	Contact []string
}

// DefaultProfile returns the site owner's profile.
func DefaultProfile() Profile {
	return Profile{
		BaseName: "Moussaab_Boucetta",
		Contact: []string{
			"moussaab.boucetta@example.com",
			"+213 555 00 00 00",
			"Algiers, Algeria",
			"github.com/moussaab",
		},
	}
}

// Document is a generated resume, ready for delivery.
type Document struct {
	Language  string
	Direction locale.Direction
	Filename  string
	Content   string
	// Missing lists non-essential keys that had no translation.
	Missing []string
}

// Artifact returns the document as a deliverable file.
func (d *Document) Artifact() Artifact {
	return Artifact{
		Filename:    d.Filename,
		ContentType: ContentType,
		Data:        []byte(d.Content),
	}
}

// Filename builds "<base>_CV_<CODE>.html".
func Filename(base, code string) string {
	return base + "_CV_" + strings.ToUpper(code) + Extension
}

// Generator assembles documents from the translation table.
type Generator struct {
	lookup  Lookup
	profile Profile
	logger  *slog.Logger
}

// NewGenerator creates a Generator. An empty profile base name is replaced by
// the default one.
func NewGenerator(lookup Lookup, profile Profile, logger *slog.Logger) *Generator {
	if profile.BaseName == "" {
		profile.BaseName = DefaultProfile().BaseName
	}
	return &Generator{lookup: lookup, profile: profile, logger: logging.OrDefault(logger)}
}

// Profile returns the generator's profile.
func (g *Generator) Profile() Profile {
	return g.profile
}

// Generate builds the document for code. It reads the table and has no other
// effect besides logging.
func (g *Generator) Generate(code string) (*Document, error) {
	code = locale.Normalize(code)

	entries, ok := g.lookup.Language(code)
	if !ok {
		return nil, &MissingTranslationError{Language: code, Keys: append([]string(nil), EssentialKeys...)}
	}

	var missingEssential []string
	for _, key := range EssentialKeys {
		if entries[key] == "" {
			missingEssential = append(missingEssential, key)
		}
	}
	if len(missingEssential) > 0 {
		return nil, &MissingTranslationError{Language: code, Keys: missingEssential}
	}

	state := locale.NewState(code)
	data, missing := g.buildData(state, entries)

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, &TemplateError{Message: "failed to execute template", Cause: err}
	}

	if len(missing) > 0 {
		g.logger.Warn("CV generated with missing translations", "language", code, "keys", missing)
	}

	return &Document{
		Language:  code,
		Direction: state.Direction,
		Filename:  Filename(g.profile.BaseName, code),
		Content:   buf.String(),
		Missing:   missing,
	}, nil
}

type templateData struct {
	Language       string
	Direction      locale.Direction
	Name           string
	Title          string
	Contact        []string
	About          string
	Headings       headings
	Timeline       []timelineEntry
	Skills         []skillCategory
	Certifications []certification
}

type headings struct {
	About          string
	Experience     string
	Skills         string
	Certifications string
}

type timelineEntry struct {
	Date        string
	Title       string
	Description string
}

type skillCategory struct {
	Label string
	Items []string
}

type certification struct {
	Title  string
	Issuer string
	Date   string
}

// builder reads entries and remembers which keys were missing.
type builder struct {
	entries map[string]string
	missing []string
}

func (b *builder) text(key string) string {
	v := b.entries[key]
	if v == "" {
		b.missing = append(b.missing, key)
	}
	return v
}

func (b *builder) textOr(key, fallback string) string {
	if v := b.text(key); v != "" {
		return v
	}
	return fallback
}

func (g *Generator) buildData(state locale.State, entries map[string]string) (*templateData, []string) {
	b := &builder{entries: entries}

	data := &templateData{
		Language:  state.Code,
		Direction: state.Direction,
		Name:      b.text("name"),
		Title:     b.text("title"),
		Contact:   g.profile.Contact,
		About:     b.text("about-text"),
		Headings: headings{
			About:          b.textOr("about-title", "About Me"),
			Experience:     b.textOr("experience-title", "Experience"),
			Skills:         b.textOr("skills-title", "Skills"),
			Certifications: b.textOr("certifications-title", "Certifications"),
		},
	}

	for i := 1; i <= TimelineEntries; i++ {
		prefix := fmt.Sprintf("timeline-%d-", i)
		data.Timeline = append(data.Timeline, timelineEntry{
			Date:        b.text(prefix + "date"),
			Title:       b.text(prefix + "title"),
			Description: b.text(prefix + "desc"),
		})
	}

	for _, cat := range SkillCategories {
		data.Skills = append(data.Skills, skillCategory{
			Label: b.textOr("skills-"+cat.Key, cat.Fallback),
			Items: cat.Items,
		})
	}

	for i := 1; i <= Certifications; i++ {
		prefix := fmt.Sprintf("cert-%d-", i)
		data.Certifications = append(data.Certifications, certification{
			Title:  b.text(prefix + "title"),
			Issuer: b.text(prefix + "issuer"),
			Date:   b.text(prefix + "date"),
		})
	}

	return data, b.missing
}
