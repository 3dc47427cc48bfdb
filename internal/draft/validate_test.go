package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaznik/internal/domain"
)

// submittableDraft returns a draft that passes validation: a physical
// person operating a domestic vehicle with liability coverage, mirrored
// into the other party sections.
func submittableDraft() *Draft {
	d := New()
	d.UpdateOperator(func(p *PartyDraft) {
		p.Name = "Jan Novák"
		p.Address = "Praha 1"
		p.NationalID = "800101/1234"
	})
	d.SetOperatorAppliesToAll(true)
	d.Options.Liability = true
	d.Vehicle.LicensePlate = "1A2 3456"
	d.PaymentFrequency = domain.PayQuarterly
	return d
}

func fieldsOf(errs []FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateSubmittableDraft(t *testing.T) {
	assert.Empty(t, Validate(submittableDraft()))
}

func TestValidateOperatorPerson(t *testing.T) {
	d := submittableDraft()
	d.UpdateOperator(func(p *PartyDraft) {
		p.Name = ""
		p.Address = "  "
		p.NationalID = ""
	})

	errs := Validate(d)
	require.Len(t, errs, 3)
	assert.Equal(t, []string{"operatorNationalId", "operatorName", "operatorAddress"}, fieldsOf(errs))
	for _, e := range errs {
		assert.Equal(t, SectionOperator, e.Section)
	}
}

func TestValidateOperatorCompany(t *testing.T) {
	d := submittableDraft()
	d.UpdateOperator(func(p *PartyDraft) {
		p.IsCompany = true
		p.TaxID = ""
		// Person identifiers stop being binding for companies.
		p.Name = ""
		p.Address = ""
		p.NationalID = ""
	})

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "operatorTaxId", errs[0].Field)
	assert.Equal(t, "IČO je povinné", errs[0].Message)

	d.UpdateOperator(func(p *PartyDraft) { p.TaxID = "12345678" })
	assert.Empty(t, Validate(d))
}

func TestValidatePolicyHolderVisibility(t *testing.T) {
	d := submittableDraft()
	d.SetOperatorAppliesToAll(false)
	d.PolicyHolder = PartyDraft{}
	d.Owner = PartyDraft{
		Name:       "Eva Malá",
		Address:    "Brno",
		NationalID: "905215/4321",
	}

	errs := Validate(d)
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, SectionPolicyHolder, e.Section)
	}

	// Mirroring just the policy holder removes its errors; the owner is a
	// separate legal role and stays independently validated.
	d.SetPolicyHolderSameAsOperator(true)
	assert.Empty(t, Validate(d))

	d.Owner = PartyDraft{}
	errs = Validate(d)
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, SectionOwner, e.Section)
	}
}

func TestValidateCoverageSelection(t *testing.T) {
	d := submittableDraft()
	d.Options = domain.InsuranceOptions{Glass: true, Assistance: true}

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldCoverageSelection, errs[0].Field)
	assert.Equal(t, SectionCoverage, errs[0].Section)
}

func TestValidateMileageWithCollision(t *testing.T) {
	d := submittableDraft()
	d.Options.Collision = true
	d.Mileage = ""

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "mileage", errs[0].Field)

	d.Mileage = "125000"
	assert.Empty(t, Validate(d))

	// Without collision coverage the mileage is never required.
	d.Options.Collision = false
	d.Mileage = ""
	assert.Empty(t, Validate(d))
}

func TestValidateImportedVehicle(t *testing.T) {
	d := submittableDraft()
	d.Vehicle.ImportedFromAbroad = true
	d.Vehicle.LicensePlate = ""

	errs := Validate(d)
	assert.Equal(t, []string{
		"vehicleType", "vin", "brand", "model",
		"engineCapacity", "maxPower", "weight", "approximateValue", "fuelType",
	}, fieldsOf(errs))
	for _, e := range errs {
		assert.Equal(t, SectionVehicle, e.Section)
	}

	d.Vehicle.VehicleType = domain.VehiclePersonal
	d.Vehicle.VIN = "TMBJJ7NE3E0123456"
	d.Vehicle.Brand = "Škoda"
	d.Vehicle.Model = "Octavia"
	d.Vehicle.EngineCapacity = "1998"
	d.Vehicle.MaxPower = "110"
	d.Vehicle.Weight = "1400"
	d.Vehicle.ApproximateValue = "350000"
	d.Vehicle.FuelType = "benzín"
	assert.Empty(t, Validate(d))
}

func TestValidateDomesticVehicleOnlyNeedsPlate(t *testing.T) {
	d := submittableDraft()
	d.Vehicle.LicensePlate = ""

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "licensePlate", errs[0].Field)
	assert.Equal(t, "SPZ je povinná", errs[0].Message)
}

func TestValidateMalformedNumbers(t *testing.T) {
	d := submittableDraft()
	d.Vehicle.ImportedFromAbroad = true
	d.Vehicle.VehicleType = domain.VehicleTruck
	d.Vehicle.VIN = "VIN123"
	d.Vehicle.Brand = "Ford"
	d.Vehicle.Model = "Transit"
	d.Vehicle.EngineCapacity = "dva litry"
	d.Vehicle.MaxPower = "96"
	d.Vehicle.Weight = "3500"
	d.Vehicle.ApproximateValue = "500000"
	d.Vehicle.FuelType = "nafta"

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "engineCapacity", errs[0].Field)
	assert.Equal(t, msgMalformedNumber, errs[0].Message)
}

func TestValidatePaymentFrequency(t *testing.T) {
	d := submittableDraft()
	d.PaymentFrequency = ""

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "paymentFrequency", errs[0].Field)

	d.PaymentFrequency = "monthly"
	errs = Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, "paymentFrequency", errs[0].Field)
}

func TestValidateReportsAllErrorsAtOnce(t *testing.T) {
	d := New() // everything empty
	errs := Validate(d)

	// Operator person fields, owner+policy holder person fields, coverage,
	// plate, payment frequency: the engine never stops at the first rule.
	assert.GreaterOrEqual(t, len(errs), 11)
	assert.Equal(t, "operatorNationalId", errs[0].Field)
	assert.Equal(t, "paymentFrequency", errs[len(errs)-1].Field)
}
