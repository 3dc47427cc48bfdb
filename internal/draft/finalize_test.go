package draft

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaznik/internal/domain"
	"dotaznik/pkg/apperrors"
)

var formIDPattern = regexp.MustCompile(`^form-\d+-[0-9a-z]{9}$`)

func TestFinalizeStampsRecord(t *testing.T) {
	d := submittableDraft()
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	form, err := Finalize(d, "Jan Novák", "jan@example.cz", now)
	require.NoError(t, err)

	assert.Regexp(t, formIDPattern, form.ID)
	assert.Equal(t, domain.StatusCompleted, form.Status)
	assert.False(t, form.ViewedByAdmin)
	assert.Equal(t, now.UnixNano(), form.CreatedAt)
	assert.Equal(t, now.UnixNano(), form.UpdatedAt)
	assert.Equal(t, "Jan Novák", form.SubmitterName)
	assert.Equal(t, "jan@example.cz", form.SubmitterEmail)
}

func TestFinalizeCompanyContactSubstitution(t *testing.T) {
	d := submittableDraft()
	d.UpdateOperator(func(p *PartyDraft) {
		p.IsCompany = true
		p.TaxID = "12345678"
		p.Name = "Autodoprava s.r.o."
		p.Phone = "111"
		p.Email = "info@firma.cz"
		p.ExecutivePhone = "777123456"
		p.ExecutiveEmail = "jednatel@firma.cz"
	})

	form, err := Finalize(d, "X", "x@example.cz", time.Now())
	require.NoError(t, err)

	// Companies carry the executive contact in the authoritative record.
	assert.Equal(t, "777123456", form.Operator.Phone)
	assert.Equal(t, "jednatel@firma.cz", form.Operator.Email)
}

func TestFinalizePersonKeepsOwnContact(t *testing.T) {
	d := submittableDraft()
	d.UpdateOperator(func(p *PartyDraft) {
		p.Phone = "606111222"
		p.Email = "jan@example.cz"
		p.ExecutivePhone = "999"
		p.ExecutiveEmail = "nobody@example.cz"
	})

	form, err := Finalize(d, "X", "x@example.cz", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "606111222", form.Operator.Phone)
	assert.Equal(t, "jan@example.cz", form.Operator.Email)
}

func TestFinalizeMileageOnlyWithCollision(t *testing.T) {
	d := submittableDraft()
	d.Mileage = "125000"

	form, err := Finalize(d, "X", "x@example.cz", time.Now())
	require.NoError(t, err)
	assert.Empty(t, form.Mileage, "mileage dropped without collision coverage")

	d.Options.Collision = true
	form, err = Finalize(d, "X", "x@example.cz", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "125000", form.Mileage)
}

func TestFinalizeVehicleCoercion(t *testing.T) {
	d := submittableDraft()
	d.Vehicle.ImportedFromAbroad = true
	d.Vehicle.VehicleType = domain.VehiclePersonal
	d.Vehicle.VIN = "TMBJJ7NE3E0123456"
	d.Vehicle.Brand = "Škoda"
	d.Vehicle.Model = "Octavia"
	d.Vehicle.EngineCapacity = "1998"
	d.Vehicle.MaxPower = "110"
	d.Vehicle.Weight = "1400"
	d.Vehicle.ApproximateValue = "350000"
	d.Vehicle.FuelType = "benzín"

	form, err := Finalize(d, "X", "x@example.cz", time.Now())
	require.NoError(t, err)

	require.NotNil(t, form.Vehicle.EngineCapacity)
	assert.Equal(t, int64(1998), *form.Vehicle.EngineCapacity)
	require.NotNil(t, form.Vehicle.ApproximateValue)
	assert.Equal(t, int64(350000), *form.Vehicle.ApproximateValue)
	assert.Equal(t, []domain.VehicleType{domain.VehiclePersonal}, form.Vehicle.VehicleTypes)
}

func TestFinalizeEmptyNumericsAreAbsent(t *testing.T) {
	d := submittableDraft()
	form, err := Finalize(d, "X", "x@example.cz", time.Now())
	require.NoError(t, err)

	assert.Nil(t, form.Vehicle.EngineCapacity)
	assert.Nil(t, form.Vehicle.MaxPower)
	assert.Nil(t, form.Vehicle.Weight)
	assert.Nil(t, form.Vehicle.ApproximateValue)
	assert.Empty(t, form.Vehicle.VehicleTypes)
}

func TestFinalizeMalformedNumberSurfaces(t *testing.T) {
	d := submittableDraft()
	d.Vehicle.Weight = "těžké"

	_, err := Finalize(d, "X", "x@example.cz", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedNumber))
}
