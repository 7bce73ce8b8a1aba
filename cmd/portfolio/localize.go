package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/portfolio-site/internal/localization"
	"github.com/jonathan/portfolio-site/internal/locale"
	"github.com/jonathan/portfolio-site/internal/prefs"
	"github.com/jonathan/portfolio-site/web"
	"github.com/spf13/cobra"
)

var (
	localizeLang  string
	localizeIn    string
	localizeOut   string
	localizeTheme string
)

var localizeCmd = &cobra.Command{
	Use:   "localize",
	Short: "Localize an HTML page offline",
	Long:  "Applies a language (and optionally a theme) to every data-lang element of an HTML page. Without --lang the language saved in the preference file is restored; the chosen language and theme are saved back.",
	RunE:  runLocalize,
}

func init() {
	localizeCmd.Flags().StringVarP(&localizeLang, "lang", "l", "", "Language code (defaults to the saved preference)")
	localizeCmd.Flags().StringVarP(&localizeIn, "in", "i", "", "Input HTML page (defaults to the embedded site page)")
	localizeCmd.Flags().StringVarP(&localizeOut, "out", "o", "", "Output file (defaults to stdout)")
	localizeCmd.Flags().StringVar(&localizeTheme, "theme", "", "Theme to apply: light or dark (defaults to the saved preference)")
	rootCmd.AddCommand(localizeCmd)
}

func runLocalize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := loadApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store, err := prefs.OpenFileStore(a.cfg.PrefsFile)
	if err != nil {
		return err
	}

	page, err := readPage(localizeIn)
	if err != nil {
		return err
	}

	html, state, report, err := localizePage(a, store, page, localizeLang, localizeTheme)
	if err != nil {
		return err
	}

	if a.printer != nil {
		a.printer.PrintLocale(state, report)
	}

	if localizeOut == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(localizeOut, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Successfully localized page to %s (%s, %s)\n", localizeOut, state.Code, state.Direction)
	return nil
}

func readPage(path string) ([]byte, error) {
	if path == "" {
		data, err := web.Assets.ReadFile(web.PagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded page: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return data, nil
}

// localizePage applies the language and theme to page. An empty code restores
// the language saved in store, and an empty theme keeps the saved theme.
func localizePage(a *app, store prefs.Store, page []byte, code, theme string) (string, locale.State, localization.Report, error) {
	view, err := localization.ParseHTML(bytes.NewReader(page))
	if err != nil {
		return "", locale.State{}, localization.Report{}, err
	}

	engine := localization.NewEngine(a.store, store, a.logger)

	var (
		state  locale.State
		report localization.Report
	)
	if code == "" {
		state, report, err = engine.Restore(view)
	} else {
		state, report, err = engine.SetLanguage(view, code)
	}
	if err != nil {
		return "", state, report, err
	}

	themes := localization.NewThemeController(store)
	if theme != "" {
		t, ok := localization.ParseTheme(theme)
		if !ok {
			return "", state, report, fmt.Errorf("unknown theme %q (want light or dark)", theme)
		}
		if err := themes.Set(t); err != nil {
			return "", state, report, err
		}
	}
	themes.Apply(view)

	html, err := view.Render()
	if err != nil {
		return "", state, report, err
	}
	return html, state, report, nil
}
