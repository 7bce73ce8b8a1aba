package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/portfolio-site/internal/config"
	"github.com/jonathan/portfolio-site/internal/cv"
	"github.com/jonathan/portfolio-site/internal/logging"
	"github.com/jonathan/portfolio-site/internal/observability"
	"github.com/jonathan/portfolio-site/internal/translations"
	"github.com/jonathan/portfolio-site/web"
)

// app is what every command needs: configuration, logger and the loaded
// translation store.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *translations.Store
	printer *observability.Printer
}

// loadApp reads the configuration and loads the translations. The store is
// loaded before anything that depends on it is built.
func loadApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, logger, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg, logger, out), nil
}

// loadSettings reads the configuration and installs the default logger.
func loadSettings() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(os.Stderr, level, cfg.LogColored)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) *app {
	source := translations.ResolveSource(cfg.Translations, web.Assets, web.LanguagesPath)
	store := translations.NewStore(source, translations.WithLogger(logger))
	store.Load(ctx)

	a := &app{cfg: cfg, logger: logger, store: store}
	if verbose {
		a.printer = observability.NewPrinter(out)
		a.printer.PrintTranslations(store.Table(), store.Loaded())
	}
	return a
}

// generator builds a CV generator from the configured base name.
func (a *app) generator() *cv.Generator {
	profile := cv.DefaultProfile()
	profile.BaseName = a.cfg.CVBaseName
	return cv.NewGenerator(a.store, profile, a.logger)
}

// pdfOptions returns the headless browser options, or an error if no browser is available.
func (a *app) pdfOptions() (*cv.PDFOptions, error) {
	execPath := a.cfg.ChromePath
	if execPath == "" {
		p, ok := cv.FindChrome()
		if !ok {
			return nil, fmt.Errorf("PDF export needs Chrome or Chromium on PATH (or chrome_path in config)")
		}
		execPath = p
	}
	return &cv.PDFOptions{Timeout: a.cfg.PDFTimeout(), ExecPath: execPath}, nil
}
