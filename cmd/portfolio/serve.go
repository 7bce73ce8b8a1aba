package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/portfolio-site/internal/form"
	"github.com/jonathan/portfolio-site/internal/localization"
	"github.com/jonathan/portfolio-site/internal/prefs"
	"github.com/jonathan/portfolio-site/internal/server"
	"github.com/jonathan/portfolio-site/internal/server/ratelimit"
	"github.com/jonathan/portfolio-site/web"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveNoPDF bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long:  `Start an HTTP server that renders the localized portfolio page, handles the contact form and serves CV downloads.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoPDF, "no-pdf", false, "Disable PDF export even if Chrome is available")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if serveAddr != "" {
		a.cfg.Addr = serveAddr
	}

	srvCfg, err := a.serverConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(srvCfg, a.serverDeps())
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.logger.Info("Starting portfolio server",
		"addr", srvCfg.Addr,
		"languages", a.store.Languages(),
		"pdf", srvCfg.PDF != nil)
	return srv.Run(ctx)
}

func (a *app) serverConfig() (server.Config, error) {
	page, err := web.Assets.ReadFile(web.PagePath)
	if err != nil {
		return server.Config{}, fmt.Errorf("failed to read page template: %w", err)
	}

	rl, err := ratelimit.LoadConfig(ratelimit.ProtectedEndpoints(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst))
	if err != nil {
		return server.Config{}, fmt.Errorf("failed to load rate limit config: %w", err)
	}

	cfg := server.Config{
		Addr:            a.cfg.Addr,
		DefaultLanguage: a.cfg.DefaultLanguage,
		SecureCookies:   a.cfg.SecureCookies,
		Page:            page,
		RateLimit:       rl,
	}

	if !serveNoPDF {
		opts, err := a.pdfOptions()
		if err != nil {
			a.logger.Warn("PDF export disabled", "error", err)
		} else {
			cfg.PDF = opts
		}
	}
	return cfg, nil
}

func (a *app) serverDeps() server.Deps {
	// Per-request handlers swap in a cookie store; this one only backs Current().
	engine := localization.NewEngine(a.store, prefs.NewMemoryStore(), a.logger)
	submitter := form.SimulatedSubmitter{Delay: a.cfg.SubmitDelay(), Logger: a.logger}
	contact := form.NewController(form.NewValidator(a.store), submitter, a.logger)

	return server.Deps{
		Translations: a.store,
		Engine:       engine,
		Contact:      contact,
		CV:           a.generator(),
		Logger:       a.logger,
	}
}
