package draft

import "dotaznik/internal/domain"

// FieldError attributes one validation failure to an input field and the
// form section it belongs to. Messages are the user-facing Czech texts.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Section string `json:"section"`
}

// Section labels as rendered in the form.
const (
	SectionOperator     = "Provozovatel"
	SectionPolicyHolder = "Pojistník"
	SectionOwner        = "Vlastník"
	SectionCoverage     = "Požadované pojištění"
	SectionVehicle      = "Údaje o vozidle"
	SectionPayment      = "Sekvence plateb"
)

// FieldCoverageSelection is the section-level pseudo-field for the
// at-least-one-coverage rule, which no single input can own.
const FieldCoverageSelection = "coverageSelection"

const msgMalformedNumber = "Hodnota musí být číslo"

// Validate runs every applicable rule against the draft and returns the
// full error set in fixed rule order; the first entry drives scrolling to
// the offending input. An empty result means the draft is submittable.
// Rules never short-circuit each other.
func Validate(d *Draft) []FieldError {
	var errs []FieldError

	errs = append(errs, validateParty(&d.Operator, "operator", SectionOperator)...)

	if d.PolicyHolderVisible() {
		errs = append(errs, validateParty(&d.PolicyHolder, "policyHolder", SectionPolicyHolder)...)
	}
	if d.OwnerVisible() {
		errs = append(errs, validateParty(&d.Owner, "owner", SectionOwner)...)
	}

	if !d.Options.PrimarySelected() {
		errs = append(errs, FieldError{FieldCoverageSelection, "Vyberte alespoň jednu možnost", SectionCoverage})
	}
	if d.Options.Collision && isBlank(d.Mileage) {
		errs = append(errs, FieldError{"mileage", "Stav tachometru je povinný při havarijním pojištění", SectionCoverage})
	}

	errs = append(errs, validateVehicle(&d.Vehicle)...)

	if !d.PaymentFrequency.Valid() {
		errs = append(errs, FieldError{"paymentFrequency", "Vyberte frekvenci plateb", SectionPayment})
	}

	return errs
}

func validateParty(p *PartyDraft, fieldPrefix, section string) []FieldError {
	var errs []FieldError
	if p.IsCompany {
		// The registered company number is the only binding identifier.
		if isBlank(p.TaxID) {
			errs = append(errs, FieldError{fieldPrefix + "TaxId", "IČO je povinné", section})
		}
		return errs
	}
	if isBlank(p.NationalID) {
		errs = append(errs, FieldError{fieldPrefix + "NationalId", "Rodné číslo je povinné", section})
	}
	if isBlank(p.Name) {
		errs = append(errs, FieldError{fieldPrefix + "Name", "Jméno a příjmení je povinné", section})
	}
	if isBlank(p.Address) {
		errs = append(errs, FieldError{fieldPrefix + "Address", "Trvalá adresa je povinná", section})
	}
	return errs
}

func validateVehicle(v *VehicleDraft) []FieldError {
	var errs []FieldError
	if !v.ImportedFromAbroad {
		if isBlank(v.LicensePlate) {
			errs = append(errs, FieldError{"licensePlate", "SPZ je povinná", SectionVehicle})
		}
		return errs
	}
	if v.VehicleType == "" {
		errs = append(errs, FieldError{"vehicleType", "Druh vozidla je povinný", SectionVehicle})
	}
	if isBlank(v.VIN) {
		errs = append(errs, FieldError{"vin", "VIN je povinný", SectionVehicle})
	}
	if isBlank(v.Brand) {
		errs = append(errs, FieldError{"brand", "Tovární značka je povinná", SectionVehicle})
	}
	if isBlank(v.Model) {
		errs = append(errs, FieldError{"model", "Modelová řada je povinná", SectionVehicle})
	}
	errs = append(errs, requireNumeric(v.EngineCapacity, "engineCapacity", "Zdvihový objem je povinný")...)
	errs = append(errs, requireNumeric(v.MaxPower, "maxPower", "Výkon je povinný")...)
	errs = append(errs, requireNumeric(v.Weight, "weight", "Hmotnost je povinná")...)
	errs = append(errs, requireNumeric(v.ApproximateValue, "approximateValue", "Přibližná hodnota vozidla je povinná")...)
	if isBlank(v.FuelType) {
		errs = append(errs, FieldError{"fuelType", "Palivo je povinné", SectionVehicle})
	}
	return errs
}

// requireNumeric demands a non-empty value that coerces to an integer.
// The malformed branch should be unreachable with type-restricted inputs.
func requireNumeric(raw, field, requiredMsg string) []FieldError {
	if isBlank(raw) {
		return []FieldError{{field, requiredMsg, SectionVehicle}}
	}
	if _, err := domain.ParseOptionalInt(raw); err != nil {
		return []FieldError{{field, msgMalformedNumber, SectionVehicle}}
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
