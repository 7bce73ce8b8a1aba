package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-site/internal/logging"
)

func validState() *State {
	return NewState("Alice", "alice@example.com", "Hello, this is a message")
}

func TestSubmit_Success(t *testing.T) {
	var got Submission
	sub := SubmitterFunc(func(_ context.Context, s Submission) error {
		got = s
		return nil
	})
	c := NewController(NewValidator(nil), sub, logging.Discard())
	ui := &RecordingUI{}
	state := NewState("  Alice ", "alice@example.com", "Hello, this is a message")

	receipt, err := c.Submit(context.Background(), "en", state, ui)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	_, parseErr := uuid.Parse(receipt.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, got.ID.String(), receipt.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "en", got.Language)

	assert.Equal(t, "Sending...", ui.Label)
	assert.Equal(t, "Thank you! Your message has been sent.", ui.Message)
	assert.False(t, ui.Failed)
	assert.True(t, ui.Restored)

	assert.Empty(t, state.Value(FieldName))
	assert.Empty(t, state.Errors())
}

func TestSubmit_InvalidDoesNotTouchUI(t *testing.T) {
	called := false
	sub := SubmitterFunc(func(context.Context, Submission) error {
		called = true
		return nil
	})
	c := NewController(NewValidator(nil), sub, logging.Discard())
	ui := &RecordingUI{}
	state := NewState("A", "alice@example.com", "short")

	receipt, err := c.Submit(context.Background(), "en", state, ui)
	assert.Nil(t, receipt)

	var invalid *InvalidFormError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []Field{FieldName, FieldMessage}, invalid.Fields)
	assert.False(t, called)
	assert.Empty(t, ui.Label)
	assert.False(t, ui.Restored)

	// Values are kept so the user can correct them.
	assert.Equal(t, "A", state.Value(FieldName))
	assert.Len(t, state.Errors(), 2)
}

func TestSubmit_FailureRestoresUI(t *testing.T) {
	boom := errors.New("network down")
	sub := SubmitterFunc(func(context.Context, Submission) error { return boom })
	c := NewController(NewValidator(nil), sub, logging.Discard())
	ui := &RecordingUI{}
	state := validState()

	receipt, err := c.Submit(context.Background(), "en", state, ui)
	assert.Nil(t, receipt)

	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, boom)

	assert.True(t, ui.Failed)
	assert.Equal(t, "There was an error sending your message. Please try again.", ui.Message)
	assert.True(t, ui.Restored)
	assert.Equal(t, "Alice", state.Value(FieldName), "values survive a failed submission")
}

func TestSubmit_ClearsPreviousErrors(t *testing.T) {
	c := NewController(NewValidator(nil), SimulatedSubmitter{Logger: logging.Discard()}, logging.Discard())
	state := NewState("", "", "")
	assert.False(t, c.Validator().ValidateAll("en", state))
	require.Len(t, state.Errors(), 3)

	state.SetValue(FieldName, "Alice")
	state.SetValue(FieldEmail, "alice@example.com")
	state.SetValue(FieldMessage, "Hello, this is a message")

	_, err := c.Submit(context.Background(), "en", state, &RecordingUI{})
	require.NoError(t, err)
	assert.Empty(t, state.Errors())
}

func TestSimulatedSubmitter_HonoursContext(t *testing.T) {
	s := SimulatedSubmitter{Delay: time.Hour, Logger: logging.Discard()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController(NewValidator(nil), s, logging.Discard())
	ui := &RecordingUI{}
	_, err := c.Submit(ctx, "en", validState(), ui)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, ui.Failed)
	assert.True(t, ui.Restored)
}

func TestSimulatedSubmitter_Delay(t *testing.T) {
	s := SimulatedSubmitter{Delay: 20 * time.Millisecond, Logger: logging.Discard()}
	start := time.Now()
	err := s.Submit(context.Background(), Submission{ID: uuid.New()})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
