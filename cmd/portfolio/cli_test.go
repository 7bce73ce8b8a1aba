package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCVCommand_WritesFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outDir := t.TempDir()

	cmd := exec.Command(binaryPath, "generate-cv", "--lang", "fr", "--out", outDir)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "command should succeed: %s", output)
	assert.Contains(t, string(output), "Successfully wrote")
	assert.FileExists(t, filepath.Join(outDir, "Moussaab_Boucetta_CV_FR.html"))
}

func TestGenerateCVCommand_UnknownLanguage(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate-cv", "--lang", "xx", "--out", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "missing translation")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode())
	}
}

func TestGenerateCVCommand_LangAndAllConflict(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "generate-cv", "--lang", "en", "--all")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "none of the others can be")
}

func TestLocalizeCommand_WritesPage(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "index.fr.html")

	cmd := exec.Command(binaryPath, "localize", "--lang", "fr", "--out", outPath)
	cmd.Env = append(os.Environ(), "PORTFOLIO_PREFS_FILE="+filepath.Join(dir, "prefs.json"))
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "command should succeed: %s", output)
	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `lang="fr"`)
	assert.FileExists(t, filepath.Join(dir, "prefs.json"))
}

func TestCheckContactCommand_Invalid(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "check-contact", "--name", "A", "--email", "bad", "--message", "hi")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "Please enter a valid email address")
	assert.Contains(t, string(output), "3 invalid field(s)")
}

func TestCheckContactCommand_Valid(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "check-contact", "--name", "Ada", "--email", "ada@example.com", "--message", "Hello there, nice site!")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed: %s", output)
	assert.Contains(t, string(output), "All fields valid")
}

func TestValidateTranslationsCommand_Embedded(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate-translations", "--strict")
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed: %s", output)
	assert.Contains(t, string(output), "Validation passed")
}
