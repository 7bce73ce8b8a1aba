package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/portfolio-site/internal/form"
	"github.com/jonathan/portfolio-site/internal/observability"
	"github.com/spf13/cobra"
)

var (
	checkContactName    string
	checkContactEmail   string
	checkContactMessage string
	checkContactLang    string
	checkContactSubmit  bool
)

var checkContactCmd = &cobra.Command{
	Use:   "check-contact",
	Short: "Validate contact form values",
	Long:  "Runs the contact form validation rules on the given values and prints the localized error for each invalid field. With --submit the simulated submission is run as well.",
	RunE:  runCheckContact,
}

func init() {
	checkContactCmd.Flags().StringVar(&checkContactName, "name", "", "Sender name")
	checkContactCmd.Flags().StringVar(&checkContactEmail, "email", "", "Sender email")
	checkContactCmd.Flags().StringVar(&checkContactMessage, "message", "", "Message body")
	checkContactCmd.Flags().StringVarP(&checkContactLang, "lang", "l", "", "Language of the error messages (defaults to the configured default language)")
	checkContactCmd.Flags().BoolVar(&checkContactSubmit, "submit", false, "Run the simulated submission after validation")
	rootCmd.AddCommand(checkContactCmd)
}

func runCheckContact(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := loadApp(ctx, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	lang := checkContactLang
	if lang == "" {
		lang = a.cfg.DefaultLanguage
	}

	state := form.NewState(checkContactName, checkContactEmail, checkContactMessage)
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if !checkContactSubmit {
		ok := form.NewValidator(a.store).ValidateAll(lang, state)
		printer.PrintFormErrors(state.Errors())
		if !ok {
			return fmt.Errorf("contact form has %d invalid field(s)", len(state.Errors()))
		}
		return nil
	}

	submitter := form.SimulatedSubmitter{Delay: a.cfg.SubmitDelay(), Logger: a.logger}
	controller := form.NewController(form.NewValidator(a.store), submitter, a.logger)
	return submitContact(ctx, cmd.OutOrStdout(), controller, lang, state, printer)
}

// consoleUI reports submission progress as plain lines.
type consoleUI struct {
	w io.Writer
}

func (u consoleUI) Busy(label string)      { _, _ = fmt.Fprintln(u.w, label) }
func (u consoleUI) Success(message string) { _, _ = fmt.Fprintln(u.w, message) }
func (u consoleUI) Alert(message string)   { _, _ = fmt.Fprintf(u.w, "Error: %s\n", message) }
func (u consoleUI) Restore()               {}

func submitContact(ctx context.Context, w io.Writer, c *form.Controller, lang string, state *form.State, printer *observability.Printer) error {
	receipt, err := c.Submit(ctx, lang, state, consoleUI{w: w})
	if err != nil {
		var invalid *form.InvalidFormError
		if errors.As(err, &invalid) {
			printer.PrintFormErrors(state.Errors())
		}
		return err
	}

	_, _ = fmt.Fprintf(w, "Receipt: %s at %s\n", receipt.ID, receipt.SubmittedAt.Format("2006-01-02 15:04:05"))
	return nil
}
