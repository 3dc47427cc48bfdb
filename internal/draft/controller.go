package draft

import (
	"context"
	"time"

	"dotaznik/internal/domain"
	"dotaznik/pkg/apperrors"
)

// State is the submission-flow state of one draft.
type State string

const (
	StateEditing            State = "editing"
	StateValidationFailed   State = "validationFailed"
	StateConfirmingIdentity State = "confirmingIdentity"
	StateSubmitting         State = "submitting"
	StateSubmitted          State = "submitted"
)

// Creator is the slice of the persistence collaborator the controller
// needs: a single create call for the finalized record.
type Creator interface {
	CreateForm(ctx context.Context, form domain.Form) error
}

// Controller drives one draft through editing, validation, identity
// confirmation and submission. Validation errors never reach the
// collaborator; a collaborator failure returns the flow to editing with
// the draft intact so the user can retry.
type Controller struct {
	backend Creator
	now     func() time.Time

	draft  *Draft
	state  State
	errors []FieldError
}

// NewController starts a fresh draft in the editing state.
func NewController(backend Creator) *Controller {
	return &Controller{
		backend: backend,
		now:     time.Now,
		draft:   New(),
		state:   StateEditing,
	}
}

// WithClock overrides the timestamp source, for tests.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Draft exposes the editable state. Mutations are only meaningful while
// the flow is in editing; Edit records that intent.
func (c *Controller) Draft() *Draft { return c.draft }

// State returns the current flow state.
func (c *Controller) State() State { return c.state }

// Errors returns the error set from the last failed validation.
func (c *Controller) Errors() []FieldError { return c.errors }

// Edit returns the flow to editing after a failed validation. Submitted
// is terminal; editing a submitted draft requires Reset.
func (c *Controller) Edit() {
	if c.state == StateValidationFailed || c.state == StateConfirmingIdentity {
		c.state = StateEditing
		c.errors = nil
	}
}

// Submit validates the draft. On a clean result the flow advances to the
// identity confirmation step; otherwise the full error set is recorded
// and returned, first error first for scroll targeting.
func (c *Controller) Submit() []FieldError {
	if c.state != StateEditing && c.state != StateValidationFailed {
		return c.errors
	}
	errs := Validate(c.draft)
	if len(errs) > 0 {
		c.state = StateValidationFailed
		c.errors = errs
		return errs
	}
	c.state = StateConfirmingIdentity
	c.errors = nil
	return nil
}

// ConfirmIdentity finalizes the validated draft with the submitter's
// contact details and hands the record to the collaborator. On failure
// the draft survives untouched and the flow returns to editing with the
// error surfaced; on success the flow is terminally submitted.
func (c *Controller) ConfirmIdentity(ctx context.Context, submitterName, submitterEmail string) (domain.Form, error) {
	if c.state != StateConfirmingIdentity {
		return domain.Form{}, apperrors.New(apperrors.CodeBadRequest, "draft is not awaiting identity confirmation")
	}
	form, err := Finalize(c.draft, submitterName, submitterEmail, c.now())
	if err != nil {
		// Unreachable for a validated draft; keep the flow editable.
		c.state = StateEditing
		return domain.Form{}, err
	}

	c.state = StateSubmitting
	if err := c.backend.CreateForm(ctx, form); err != nil {
		c.state = StateEditing
		return domain.Form{}, apperrors.Wrap(apperrors.CodeUnavailable, "odeslání formuláře selhalo", err)
	}
	c.state = StateSubmitted
	return form, nil
}

// Reset discards everything and starts a fresh draft.
func (c *Controller) Reset() {
	c.draft = New()
	c.state = StateEditing
	c.errors = nil
}
