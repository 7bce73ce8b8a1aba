package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/observability"
	"github.com/jonathan/portfolio-site/internal/schemas"
	"github.com/jonathan/portfolio-site/internal/translations"
	"github.com/jonathan/portfolio-site/web"
	"github.com/spf13/cobra"
)

var (
	validateTranslationsFile      string
	validateTranslationsReference string
	validateTranslationsStrict    bool
)

var validateTranslationsCmd = &cobra.Command{
	Use:   "validate-translations",
	Short: "Validate the translation file",
	Long:  "Checks the translation file against the languages JSON Schema and reports, per language, the keys missing compared to the reference language. With --strict missing keys fail the command.",
	RunE:  runValidateTranslations,
}

func init() {
	validateTranslationsCmd.Flags().StringVarP(&validateTranslationsFile, "file", "f", "", "Path or URL of the translation file (defaults to the configured one)")
	validateTranslationsCmd.Flags().StringVar(&validateTranslationsReference, "reference", locale.DefaultCode, "Reference language for the coverage report")
	validateTranslationsCmd.Flags().BoolVar(&validateTranslationsStrict, "strict", false, "Fail when any language misses a reference key")
	rootCmd.AddCommand(validateTranslationsCmd)
}

func runValidateTranslations(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, _, err := loadSettings()
	if err != nil {
		return err
	}

	location := validateTranslationsFile
	if location == "" {
		location = cfg.Translations
	}
	source := translations.ResolveSource(location, web.Assets, web.LanguagesPath)

	return validateTranslations(ctx, cmd.OutOrStdout(), source, validateTranslationsReference, validateTranslationsStrict)
}

// validateTranslations fetches the resource, checks it against the schema and
// prints the coverage report. JSON is checked as raw bytes so that a value of
// the wrong type is reported by the schema rather than by the decoder.
func validateTranslations(ctx context.Context, w io.Writer, source translations.Source, reference string, strict bool) error {
	data, err := source.Fetch(ctx)
	if err != nil {
		return err
	}

	format := translations.FormatFor(source.Name())
	if format == translations.FormatJSON {
		if err := schemas.ValidateTranslationsJSON(data); err != nil {
			_, _ = fmt.Fprintf(w, "Validation failed: %s\n", source.Name())
			return err
		}
	}

	table, err := translations.Decode(data, format)
	if err != nil {
		return err
	}

	if format != translations.FormatJSON {
		if err := schemas.ValidateTranslations(table); err != nil {
			_, _ = fmt.Fprintf(w, "Validation failed: %s\n", source.Name())
			return err
		}
	}
	_, _ = fmt.Fprintf(w, "Validation passed: %s (%d languages)\n", source.Name(), len(table))

	// Coverage is reported on the codes the site serves.
	table = table.Normalized()
	reference = locale.Normalize(reference)
	if _, ok := table[reference]; !ok {
		return fmt.Errorf("reference language %q not in translation file", reference)
	}

	cov := translations.CheckCoverage(table, reference)
	observability.NewPrinter(w).PrintCoverage(cov)

	if strict && !cov.Complete() {
		return fmt.Errorf("translation coverage incomplete against %q", reference)
	}
	return nil
}
