package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-site/internal/logging"
)

// DefaultSubmitDelay is how long the simulated submission takes.
const DefaultSubmitDelay = 2 * time.Second

// Submission is a validated, trimmed contact message.
type Submission struct {
	ID       uuid.UUID
	Language string
	Name     string
	Email    string
	Message  string
}

// Receipt acknowledges a delivered submission.
type Receipt struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submitter delivers a submission.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// SimulatedSubmitter stands in for a backend: it waits Delay and logs the message.
type SimulatedSubmitter struct {
	Delay  time.Duration
	Logger *slog.Logger
}

// Submit implements Submitter. It returns ctx.Err() if ctx ends before the delay.
func (s SimulatedSubmitter) Submit(ctx context.Context, sub Submission) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	logging.OrDefault(s.Logger).Info("Contact message received",
		"id", sub.ID.String(),
		"language", sub.Language,
		"email", sub.Email,
		"length", len(sub.Message))
	return nil
}

// SubmitUI is the submit button and notification area of the form.
type SubmitUI interface {
	// Busy disables the button and shows label.
	Busy(label string)
	// Success shows the confirmation message.
	Success(message string)
	// Alert shows a submission failure.
	Alert(message string)
	// Restore re-enables the button with its original content.
	Restore()
}

// Controller runs the validate-then-submit flow.
type Controller struct {
	validator *Validator
	submitter Submitter
	logger    *slog.Logger
}

// NewController creates a Controller.
func NewController(v *Validator, s Submitter, logger *slog.Logger) *Controller {
	return &Controller{validator: v, submitter: s, logger: logging.OrDefault(logger)}
}

// Validator returns the controller's validator.
func (c *Controller) Validator() *Validator {
	return c.validator
}

// Submit clears previous errors, validates every field and, when the form is
// valid, delivers it. ui.Restore runs on success and on failure; nothing is
// shown on ui when validation fails.
func (c *Controller) Submit(ctx context.Context, lang string, state *State, ui SubmitUI) (*Receipt, error) {
	state.ClearErrors()
	if !c.validator.ValidateAll(lang, state) {
		invalid := []Field{}
		for _, f := range Fields {
			if _, ok := state.Error(f); ok {
				invalid = append(invalid, f)
			}
		}
		return nil, &InvalidFormError{Fields: invalid}
	}

	ui.Busy(c.validator.Text(lang, "sending"))
	defer ui.Restore()

	sub := Submission{
		ID:       uuid.New(),
		Language: lang,
		Name:     state.Trimmed(FieldName),
		Email:    state.Trimmed(FieldEmail),
		Message:  state.Trimmed(FieldMessage),
	}

	if err := c.submitter.Submit(ctx, sub); err != nil {
		c.logger.Error("Error submitting form", "id", sub.ID.String(), "error", err)
		ui.Alert(c.validator.Text(lang, "error-submission"))
		return nil, &SubmissionError{Message: "delivery failed", Cause: err}
	}

	ui.Success(c.validator.Text(lang, "success-message"))
	state.Reset()

	return &Receipt{ID: sub.ID.String(), SubmittedAt: time.Now().UTC()}, nil
}

// RecordingUI is a SubmitUI that remembers what was shown. Hosts without a
// live page, such as the JSON endpoint, use it to report the outcome.
type RecordingUI struct {
	Label    string
	Message  string
	Failed   bool
	Restored bool
}

// Busy implements SubmitUI.
func (u *RecordingUI) Busy(label string) { u.Label = label }

// Success implements SubmitUI.
func (u *RecordingUI) Success(message string) { u.Message = message }

// Alert implements SubmitUI.
func (u *RecordingUI) Alert(message string) {
	u.Message = message
	u.Failed = true
}

// Restore implements SubmitUI.
func (u *RecordingUI) Restore() { u.Restored = true }
