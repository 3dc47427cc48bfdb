package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaznik/internal/domain"
	"dotaznik/pkg/apperrors"
)

type stubCreator struct {
	created []domain.Form
	err     error
}

func (s *stubCreator) CreateForm(_ context.Context, form domain.Form) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, form)
	return nil
}

func fillSubmittable(c *Controller) {
	d := c.Draft()
	d.UpdateOperator(func(p *PartyDraft) {
		p.Name = "Jan Novák"
		p.Address = "Praha 1"
		p.NationalID = "800101/1234"
	})
	d.SetOperatorAppliesToAll(true)
	d.Options.Liability = true
	d.Vehicle.LicensePlate = "1A2 3456"
	d.PaymentFrequency = domain.PayQuarterly
}

func TestSubmitWithErrorsStaysEditable(t *testing.T) {
	c := NewController(&stubCreator{})

	errs := c.Submit()
	require.NotEmpty(t, errs)
	assert.Equal(t, StateValidationFailed, c.State())
	assert.Equal(t, errs, c.Errors())

	// Correcting the draft and resubmitting advances the flow.
	c.Edit()
	assert.Equal(t, StateEditing, c.State())
	fillSubmittable(c)
	require.Empty(t, c.Submit())
	assert.Equal(t, StateConfirmingIdentity, c.State())
}

func TestEndToEndSubmission(t *testing.T) {
	backend := &stubCreator{}
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	c := NewController(backend).WithClock(func() time.Time { return now })
	fillSubmittable(c)

	require.Empty(t, c.Submit())

	form, err := c.ConfirmIdentity(context.Background(), "Jan Novák", "jan@example.cz")
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, c.State())
	require.Len(t, backend.created, 1)

	assert.Equal(t, form.Operator, form.PolicyHolder)
	assert.Equal(t, form.Operator, form.Owner)
	assert.Equal(t, domain.StatusCompleted, form.Status)
	assert.False(t, form.ViewedByAdmin)
	assert.Empty(t, form.Mileage)
	assert.Equal(t, now.UnixNano(), form.CreatedAt)
}

func TestCollaboratorFailurePreservesDraft(t *testing.T) {
	backend := &stubCreator{err: errors.New("connection refused")}
	c := NewController(backend)
	fillSubmittable(c)
	require.Empty(t, c.Submit())

	_, err := c.ConfirmIdentity(context.Background(), "Jan Novák", "jan@example.cz")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnavailable))
	assert.Equal(t, StateEditing, c.State())

	// The draft survives and a retry against a healthy backend succeeds.
	backend.err = nil
	require.Empty(t, c.Submit())
	_, err = c.ConfirmIdentity(context.Background(), "Jan Novák", "jan@example.cz")
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, c.State())
}

func TestConfirmIdentityRequiresConfirmationState(t *testing.T) {
	c := NewController(&stubCreator{})
	_, err := c.ConfirmIdentity(context.Background(), "X", "x@example.cz")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}

func TestSubmittedIsTerminalUntilReset(t *testing.T) {
	c := NewController(&stubCreator{})
	fillSubmittable(c)
	require.Empty(t, c.Submit())
	_, err := c.ConfirmIdentity(context.Background(), "Jan Novák", "jan@example.cz")
	require.NoError(t, err)

	c.Edit()
	assert.Equal(t, StateSubmitted, c.State())

	c.Reset()
	assert.Equal(t, StateEditing, c.State())
	assert.Empty(t, c.Draft().Operator.Name)
}
