package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trifecta/internal/validation"
)

type fakeSubmitter struct {
	calls int
	draft validation.Draft
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, draft validation.Draft) error {
	f.calls++
	f.draft = draft
	return f.err
}

func fillCarDetails(w *Wizard) {
	w.SetCarName("Ferrari")
	w.SetCarColor("Red")
}

func fillContact(w *Wizard) {
	w.SetName("Alice Smith")
	w.SetPhone("5551234567")
	w.SetEmail("alice@example.com")
}

func TestNext_BlockedByCarDetailsValidation(t *testing.T) {
	w := New(&fakeSubmitter{})

	res, err := w.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.Equal(t, StepCarDetails, w.Step())
	assert.NotEmpty(t, res.ErrorFor(validation.FieldCarDetails))
}

func TestNext_AdvancesThroughAllSteps(t *testing.T) {
	sub := &fakeSubmitter{}
	w := New(sub)
	ctx := context.Background()

	fillCarDetails(w)
	res, err := w.Next(ctx)
	require.NoError(t, err)
	require.True(t, res.Valid())
	assert.Equal(t, StepContact, w.Step())

	fillContact(w)
	res, err = w.Next(ctx)
	require.NoError(t, err)
	require.True(t, res.Valid())
	assert.Equal(t, StepThankYou, w.Step())
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, "Ferrari", sub.draft.CarName)
}

func TestNext_ContactValidationBlocksWithoutSubmitting(t *testing.T) {
	sub := &fakeSubmitter{}
	w := New(sub)
	fillCarDetails(w)
	_, err := w.Next(context.Background())
	require.NoError(t, err)

	w.SetName("A1")
	w.SetPhone("123")
	w.SetEmail("bad")
	res, err := w.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Errors, 3)
	assert.Equal(t, StepContact, w.Step())
	assert.Zero(t, sub.calls, "submitter must not run while validation fails")
}

func TestNext_SubmitFailureStaysOnContactStep(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("server unreachable")}
	w := New(sub)
	fillCarDetails(w)
	_, err := w.Next(context.Background())
	require.NoError(t, err)

	fillContact(w)
	_, err = w.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepContact, w.Step())

	// A retry after recovery completes the flow.
	sub.err = nil
	_, err = w.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepThankYou, w.Step())
}

func TestBack_PreservesEnteredValues(t *testing.T) {
	w := New(&fakeSubmitter{})
	fillCarDetails(w)
	_, err := w.Next(context.Background())
	require.NoError(t, err)
	w.SetName("Alice")

	require.NoError(t, w.Back())
	assert.Equal(t, StepCarDetails, w.Step())
	assert.Equal(t, "Ferrari", w.Draft().CarName)
	assert.Equal(t, "Alice", w.Draft().Name)
}

func TestBack_OnlyFromContactStep(t *testing.T) {
	w := New(&fakeSubmitter{})
	assert.ErrorIs(t, w.Back(), ErrNoBackTransition)
}

func TestNext_FromThankYouIsTerminal(t *testing.T) {
	w := New(&fakeSubmitter{})
	fillCarDetails(w)
	_, _ = w.Next(context.Background())
	fillContact(w)
	_, err := w.Next(context.Background())
	require.NoError(t, err)

	_, err = w.Next(context.Background())
	assert.ErrorIs(t, err, ErrFlowComplete)
}

func TestReset_RestoresInitialState(t *testing.T) {
	w := New(&fakeSubmitter{})
	fillCarDetails(w)
	w.SetCustomBase(true)
	_, _ = w.Next(context.Background())
	fillContact(w)
	_, err := w.Next(context.Background())
	require.NoError(t, err)

	w.Reset()
	assert.Equal(t, StepCarDetails, w.Step())
	assert.Equal(t, MethodManual, w.Method())
	assert.Equal(t, validation.Draft{}, w.Draft())
}

func TestSetInputMethod_ClearsOtherPath(t *testing.T) {
	w := New(&fakeSubmitter{})
	fillCarDetails(w)

	w.SetInputMethod(MethodPhoto)
	assert.Empty(t, w.Draft().CarName)
	assert.Empty(t, w.Draft().CarColor)

	fe := w.AttachPhoto(validation.PhotoInfo{Name: "car.jpg", Size: 2048, Type: "image/jpeg"})
	assert.Nil(t, fe)
	require.NotNil(t, w.Draft().CarPhoto)

	w.SetInputMethod(MethodManual)
	assert.Nil(t, w.Draft().CarPhoto)
}

func TestSetInputMethod_SameMethodIsNoop(t *testing.T) {
	w := New(&fakeSubmitter{})
	fillCarDetails(w)
	w.SetInputMethod(MethodManual)
	assert.Equal(t, "Ferrari", w.Draft().CarName)
}
