// Package draft owns the editable state of one in-progress submission: the
// three party sections, the vehicle, coverage selection, and the two
// derivation toggles that mirror the operator into the other parties.
// Derivation runs synchronously inside each mutation instead of as a
// reactive watcher, so rule ordering is deterministic.
package draft

import "dotaznik/internal/domain"

// PartyDraft is the editable counterpart of domain.Party. It additionally
// carries the executive phone/email, which exist only while editing; the
// finalizer substitutes them into the party contact fields for companies.
type PartyDraft struct {
	Name                string
	Address             string
	Phone               string
	Email               string
	TaxID               string
	NationalID          string
	IsCompany           bool
	IsVATPayer          bool
	ExecutiveName       string
	ExecutivePhone      string
	ExecutiveEmail      string
	ExecutiveNationalID string
	CompanyFirstName    string
	CompanyLastName     string
}

// VehicleDraft keeps the optional numeric figures as raw text, the way the
// inputs hold them. Coercion to integers happens at validation/finalization.
type VehicleDraft struct {
	LicensePlate            string
	VIN                     string
	Brand                   string
	Model                   string
	FuelType                string
	EngineCapacity          string
	MaxPower                string
	Weight                  string
	ApproximateValue        string
	VehicleType             domain.VehicleType // empty until selected
	UsageType               domain.UsageType
	ImportedFromAbroad      bool
	HasTechnicalCertificate bool
}

// Draft is the transient in-memory state of one form instance. It is never
// persisted; storage only ever sees the finalized record.
type Draft struct {
	Operator     PartyDraft
	PolicyHolder PartyDraft
	Owner        PartyDraft

	// OperatorAppliesToAll mirrors the operator into both the policy
	// holder and the owner on every operator change while set.
	OperatorAppliesToAll bool
	// PolicyHolderSameAsOperator mirrors the operator into the policy
	// holder only. Independent of OperatorAppliesToAll; both may be set.
	PolicyHolderSameAsOperator bool

	Vehicle          VehicleDraft
	Options          domain.InsuranceOptions
	Mileage          string
	PaymentFrequency domain.PaymentFrequency // empty until chosen, no default
	Notes            string
}

// New returns an empty draft. Usage defaults to standard operation, the
// only field with a preselected value in the form.
func New() *Draft {
	return &Draft{
		Vehicle: VehicleDraft{UsageType: domain.UsageStandard},
	}
}

// UpdateOperator applies a mutation to the operator section and re-runs
// the mirroring rules, so dependent sections are already consistent when
// the caller observes the next state.
func (d *Draft) UpdateOperator(mutate func(*PartyDraft)) {
	mutate(&d.Operator)
	d.derive()
}

// SetOperatorAppliesToAll toggles the all-sections mirror. Switching it on
// copies the operator immediately; switching it off freezes the mirrored
// sections at their last values rather than clearing them.
func (d *Draft) SetOperatorAppliesToAll(on bool) {
	d.OperatorAppliesToAll = on
	d.derive()
}

// SetPolicyHolderSameAsOperator toggles the policy-holder-only mirror.
func (d *Draft) SetPolicyHolderSameAsOperator(on bool) {
	d.PolicyHolderSameAsOperator = on
	d.derive()
}

// SetBrand changes the vehicle brand and resets the model, whose choices
// are scoped to the selected brand.
func (d *Draft) SetBrand(brand string) {
	if brand != d.Vehicle.Brand {
		d.Vehicle.Model = ""
	}
	d.Vehicle.Brand = brand
}

// PolicyHolderVisible reports whether the policy holder section is edited
// (and therefore validated) independently.
func (d *Draft) PolicyHolderVisible() bool {
	return !d.OperatorAppliesToAll && !d.PolicyHolderSameAsOperator
}

// OwnerVisible reports whether the owner section is edited independently.
// The owner stays a separate legal role even when the policy holder is
// mirrored, so only the all-sections toggle hides it.
func (d *Draft) OwnerVisible() bool {
	return !d.OperatorAppliesToAll
}

// derive applies the one-way operator mirrors, last write wins from the
// operator. Both rules write identical values, so their relative order
// does not matter when both toggles are active.
func (d *Draft) derive() {
	if d.OperatorAppliesToAll {
		d.PolicyHolder = d.Operator
		d.Owner = d.Operator
	}
	if d.PolicyHolderSameAsOperator {
		d.PolicyHolder = d.Operator
	}
}
