// Package wizard drives the three-step intake flow: car details, contact
// info, confirmation. The state lives in an explicit value owned by one
// session; every transition runs the matching validation schema before
// advancing, and the only network call happens on the final submit.
package wizard

import (
	"context"
	"errors"

	"trifecta/internal/validation"
)

// Step identifies the current wizard screen.
type Step int

const (
	StepCarDetails Step = iota + 1
	StepContact
	StepThankYou
)

func (s Step) String() string {
	switch s {
	case StepCarDetails:
		return "car-details"
	case StepContact:
		return "contact"
	case StepThankYou:
		return "thank-you"
	}
	return "unknown"
}

// InputMethod selects how the customer identifies the car.
type InputMethod string

const (
	MethodManual InputMethod = "manual"
	MethodPhoto  InputMethod = "photo"
)

var (
	ErrNoBackTransition = errors.New("no back transition from this step")
	ErrFlowComplete     = errors.New("flow already complete; call Reset to start over")
)

// Submitter performs the final submission round-trip. The wizard advances to
// the thank-you step only if it succeeds.
type Submitter interface {
	Submit(ctx context.Context, draft validation.Draft) error
}

// Wizard holds the draft and step pointer for one session.
type Wizard struct {
	step      Step
	method    InputMethod
	draft     validation.Draft
	submitter Submitter
}

// New returns a wizard at the first step with an empty draft.
func New(submitter Submitter) *Wizard {
	return &Wizard{
		step:      StepCarDetails,
		method:    MethodManual,
		submitter: submitter,
	}
}

// Step returns the current step pointer.
func (w *Wizard) Step() Step {
	return w.step
}

// Method returns the selected car input method.
func (w *Wizard) Method() InputMethod {
	return w.method
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() validation.Draft {
	return w.draft
}

// SetInputMethod switches between the manual and photo paths. Switching
// clears the other method's fields so the draft never holds contradictory
// half-filled state.
func (w *Wizard) SetInputMethod(method InputMethod) {
	if method == w.method {
		return
	}
	w.method = method
	switch method {
	case MethodManual:
		w.draft.CarPhoto = nil
	case MethodPhoto:
		w.draft.CarName = ""
		w.draft.CarColor = ""
	}
}

func (w *Wizard) SetCarName(v string)  { w.draft.CarName = v }
func (w *Wizard) SetCarColor(v string) { w.draft.CarColor = v }
func (w *Wizard) SetName(v string)     { w.draft.Name = v }
func (w *Wizard) SetPhone(v string)    { w.draft.Phone = v }
func (w *Wizard) SetEmail(v string)    { w.draft.Email = v }

func (w *Wizard) SetCustomBase(v bool)  { w.draft.CustomBase = v }
func (w *Wizard) SetAcrylicCase(v bool) { w.draft.AcrylicCase = v }

// AttachPhoto records the uploaded file and returns the live validation
// outcome for the photo slot.
func (w *Wizard) AttachPhoto(photo validation.PhotoInfo) *validation.FieldError {
	w.draft.CarPhoto = &photo
	return validation.ValidateCarPhoto(photo)
}

// Next attempts to advance one step. The returned Result carries field errors
// when validation blocked the transition; a non-nil error means the final
// submit round-trip failed and the wizard stayed on the contact step.
func (w *Wizard) Next(ctx context.Context) (validation.Result, error) {
	switch w.step {
	case StepCarDetails:
		res := validation.ValidateCarDetails(w.draft)
		if res.Valid() {
			w.step = StepContact
		}
		return res, nil

	case StepContact:
		res := validation.ValidateContact(w.draft)
		if !res.Valid() {
			return res, nil
		}
		if err := w.submitter.Submit(ctx, w.draft); err != nil {
			return res, err
		}
		w.step = StepThankYou
		return res, nil

	default:
		return validation.Result{}, ErrFlowComplete
	}
}

// Back returns to the car-details step, preserving everything entered so
// far. Only the contact step has a back edge.
func (w *Wizard) Back() error {
	if w.step != StepContact {
		return ErrNoBackTransition
	}
	w.step = StepCarDetails
	return nil
}

// Reset discards the draft and returns to the first step ("submit another").
func (w *Wizard) Reset() {
	w.step = StepCarDetails
	w.method = MethodManual
	w.draft = validation.Draft{}
}
