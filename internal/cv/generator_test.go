package cv

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/logging"
	"github.com/jonathan/portfolio-site/internal/translations"
	"github.com/jonathan/portfolio-site/web"
)

func siteStore(t *testing.T) *translations.Store {
	t.Helper()
	store := translations.NewStore(translations.FSSource{FS: web.Assets, Path: web.LanguagesPath},
		translations.WithLogger(logging.Discard()))
	store.Load(context.Background())
	require.True(t, store.Loaded())
	return store
}

func newTestGenerator(t *testing.T) *Generator {
	return NewGenerator(siteStore(t), DefaultProfile(), logging.Discard())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Moussaab_Boucetta_CV_EN.html", Filename("Moussaab_Boucetta", "en"))
	assert.Equal(t, "Moussaab_Boucetta_CV_AR.html", Filename("Moussaab_Boucetta", "ar"))
	assert.Equal(t, "Jane_CV_FR.html", Filename("Jane", "fr"))
}

func TestGenerate_English(t *testing.T) {
	g := newTestGenerator(t)

	doc, err := g.Generate("en")
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, locale.LTR, doc.Direction)
	assert.Equal(t, "Moussaab_Boucetta_CV_EN.html", doc.Filename)
	assert.Empty(t, doc.Missing)

	assert.Contains(t, doc.Content, `<html lang="en" dir="ltr">`)
	assert.Contains(t, doc.Content, "Moussaab Boucetta")
	assert.Contains(t, doc.Content, "Full-Stack Developer")
	assert.Contains(t, doc.Content, "moussaab.boucetta@example.com")

	assert.Equal(t, 3, strings.Count(doc.Content, `<div class="entry">`))
	assert.Equal(t, 6, strings.Count(doc.Content, `<div class="skill">`))
	assert.Equal(t, 3, strings.Count(doc.Content, `<div class="cert">`))
}

func TestGenerate_FixedOrder(t *testing.T) {
	doc, err := newTestGenerator(t).Generate("en")
	require.NoError(t, err)

	inOrder := func(needles ...string) {
		t.Helper()
		last := -1
		for _, n := range needles {
			idx := strings.Index(doc.Content, n)
			require.GreaterOrEqual(t, idx, 0, "missing %q", n)
			assert.Greater(t, idx, last, "%q out of order", n)
			last = idx
		}
	}

	inOrder("2023 - Present", "2021 - 2023", "2018 - 2021")
	inOrder("Front-End:", "Back-End:", "Databases:", "DevOps &amp; Cloud:", "Tools:", "Programming Languages:")
	inOrder("Responsive Web Design", "JavaScript Algorithms and Data Structures", "Cloud Practitioner")
	inOrder("About Me", "Experience", "Skills", "Certifications")
}

func TestGenerate_SkillItemsNotTranslated(t *testing.T) {
	g := newTestGenerator(t)

	fr, err := g.Generate("fr")
	require.NoError(t, err)
	ar, err := g.Generate("ar")
	require.NoError(t, err)

	for _, doc := range []*Document{fr, ar} {
		assert.Contains(t, doc.Content, "PostgreSQL, MySQL, MongoDB, Redis")
	}
	assert.Contains(t, fr.Content, "Bases de données:")
	assert.Contains(t, ar.Content, "قواعد البيانات:")
}

func TestGenerate_Direction(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		code string
		dir  locale.Direction
	}{
		{"en", locale.LTR},
		{"fr", locale.LTR},
		{"ar", locale.RTL},
		{"AR", locale.RTL},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			doc, err := g.Generate(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.dir, doc.Direction)
			assert.Contains(t, doc.Content, `dir="`+string(tt.dir)+`"`)
		})
	}

	doc, err := g.Generate("ar")
	require.NoError(t, err)
	assert.Equal(t, "Moussaab_Boucetta_CV_AR.html", doc.Filename)
	assert.Contains(t, doc.Content, "مصعب بوسطة")
}

func TestGenerate_UnknownLanguage(t *testing.T) {
	doc, err := newTestGenerator(t).Generate("de")
	assert.Nil(t, doc)

	var mte *MissingTranslationError
	require.True(t, errors.As(err, &mte))
	assert.Equal(t, "de", mte.Language)
	assert.Equal(t, []string{"name", "title"}, mte.Keys)
}

func TestGenerate_MissingEssentialKey(t *testing.T) {
	store := translations.NewStaticStore(translations.Table{
		"en": {"name": "Jane Doe"},
	})
	g := NewGenerator(store, Profile{BaseName: "Jane_Doe"}, logging.Discard())

	doc, err := g.Generate("en")
	assert.Nil(t, doc)

	var mte *MissingTranslationError
	require.True(t, errors.As(err, &mte))
	assert.Equal(t, []string{"title"}, mte.Keys)
}

func TestGenerate_PartialTableRendersEmptySlots(t *testing.T) {
	store := translations.NewStaticStore(translations.Table{
		"en": {"name": "Jane <Doe>", "title": "Engineer", "timeline-1-date": "2020"},
	})
	g := NewGenerator(store, Profile{}, logging.Discard())

	doc, err := g.Generate("en")
	require.NoError(t, err)

	assert.Equal(t, "Moussaab_Boucetta_CV_EN.html", doc.Filename, "empty base name uses the default")
	assert.Contains(t, doc.Content, "Jane &lt;Doe&gt;")
	assert.Contains(t, doc.Content, "About Me")
	assert.Equal(t, 3, strings.Count(doc.Content, `<div class="entry">`))
	assert.Contains(t, doc.Missing, "timeline-1-title")
	assert.Contains(t, doc.Missing, "cert-3-date")
	assert.NotContains(t, doc.Missing, "timeline-1-date")
}

func TestGenerate_Pure(t *testing.T) {
	g := newTestGenerator(t)
	a, err := g.Generate("fr")
	require.NoError(t, err)
	b, err := g.Generate("fr")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDeliver_HTTP(t *testing.T) {
	doc, err := newTestGenerator(t).Generate("en")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, Deliver(doc.Artifact(), HTTPSink{W: rec}))

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Moussaab_Boucetta_CV_EN.html"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, doc.Content, rec.Body.String())
}

func TestDeliver_Dir(t *testing.T) {
	doc, err := newTestGenerator(t).Generate("ar")
	require.NoError(t, err)

	sink := DirSink{Dir: t.TempDir() + "/out"}
	require.NoError(t, Deliver(doc.Artifact(), sink))

	data, err := os.ReadFile(sink.Path(doc.Filename))
	require.NoError(t, err)
	assert.Equal(t, doc.Content, string(data))
}

type failingSink struct{}

func (failingSink) Write(Artifact) error { return errors.New("disk full") }

func TestDeliver_Errors(t *testing.T) {
	err := Deliver(Artifact{}, failingSink{})
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "(unnamed)", de.Filename)

	err = Deliver(Artifact{Filename: "x.html"}, failingSink{})
	require.True(t, errors.As(err, &de))
	assert.EqualError(t, errors.Unwrap(err), "disk full")
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "Moussaab_Boucetta_CV_EN.pdf", PDFFilename("Moussaab_Boucetta_CV_EN.html"))
}
