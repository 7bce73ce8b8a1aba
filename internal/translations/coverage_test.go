package translations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCoverage(t *testing.T) {
	table := Table{
		"en": {"name": "Jane", "title": "Dev", "about-title": "About"},
		"fr": {"name": "Jeanne", "title": "Dév", "about-title": "À propos"},
		"ar": {"name": "جين", "title": ""},
	}

	cov := CheckCoverage(table, "en")

	assert.Equal(t, 3, cov.KeyCount)
	assert.Empty(t, cov.Missing["fr"])
	assert.Equal(t, []string{"about-title", "title"}, cov.Missing["ar"])
	assert.False(t, cov.Complete())
}

func TestCheckCoverage_Complete(t *testing.T) {
	table := Table{
		"en": {"name": "Jane"},
		"fr": {"name": "Jeanne"},
	}

	assert.True(t, CheckCoverage(table, "en").Complete())
}
