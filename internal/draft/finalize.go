package draft

import (
	"fmt"
	"math/rand"
	"time"

	"dotaznik/internal/domain"
)

// Finalize converts a validated draft plus the submitter identity into the
// immutable record sent to storage. It is the single point where the
// editable, partially-inconsistent draft shape becomes the authoritative
// one: company parties get their contact fields substituted from the
// executive sub-fields, numeric texts are coerced, the id and timestamps
// are stamped. The only error path is numeric coercion, which validation
// already rules out for a validated draft.
func Finalize(d *Draft, submitterName, submitterEmail string, now time.Time) (domain.Form, error) {
	vehicle, err := finalizeVehicle(&d.Vehicle)
	if err != nil {
		return domain.Form{}, err
	}

	mileage := ""
	if d.Options.Collision && !isBlank(d.Mileage) {
		mileage = d.Mileage
	}

	stamp := now.UnixNano()
	return domain.Form{
		ID:                   NewFormID(now),
		Status:               domain.StatusCompleted,
		Operator:             finalizeParty(&d.Operator),
		PolicyHolder:         finalizeParty(&d.PolicyHolder),
		Owner:                finalizeParty(&d.Owner),
		Vehicle:              vehicle,
		InsuranceOptions:     d.Options,
		PaymentFrequency:     d.PaymentFrequency,
		Mileage:              mileage,
		Notes:                d.Notes,
		OperatorAppliesToAll: d.OperatorAppliesToAll,
		CreatedAt:            stamp,
		UpdatedAt:            stamp,
		ViewedByAdmin:        false,
		SubmitterName:        submitterName,
		SubmitterEmail:       submitterEmail,
	}, nil
}

// NewFormID builds the time+random composite identifier. Collision
// resistance is practical, not guaranteed; storage never deduplicates.
func NewFormID(now time.Time) string {
	return fmt.Sprintf("form-%d-%s", now.UnixMilli(), randomBase36(9))
}

func finalizeParty(p *PartyDraft) domain.Party {
	phone, email := p.Phone, p.Email
	if p.IsCompany {
		phone, email = p.ExecutivePhone, p.ExecutiveEmail
	}
	return domain.Party{
		Name:                p.Name,
		Address:             p.Address,
		Phone:               phone,
		Email:               email,
		TaxID:               p.TaxID,
		NationalID:          p.NationalID,
		IsCompany:           p.IsCompany,
		IsVATPayer:          p.IsVATPayer,
		ExecutiveName:       p.ExecutiveName,
		ExecutiveNationalID: p.ExecutiveNationalID,
		CompanyFirstName:    p.CompanyFirstName,
		CompanyLastName:     p.CompanyLastName,
	}
}

func finalizeVehicle(v *VehicleDraft) (domain.Vehicle, error) {
	engineCapacity, err := domain.ParseOptionalInt(v.EngineCapacity)
	if err != nil {
		return domain.Vehicle{}, err
	}
	maxPower, err := domain.ParseOptionalInt(v.MaxPower)
	if err != nil {
		return domain.Vehicle{}, err
	}
	weight, err := domain.ParseOptionalInt(v.Weight)
	if err != nil {
		return domain.Vehicle{}, err
	}
	approximateValue, err := domain.ParseOptionalInt(v.ApproximateValue)
	if err != nil {
		return domain.Vehicle{}, err
	}

	var types []domain.VehicleType
	if v.VehicleType != "" {
		types = []domain.VehicleType{v.VehicleType}
	}

	return domain.Vehicle{
		LicensePlate:            v.LicensePlate,
		VIN:                     v.VIN,
		Brand:                   v.Brand,
		Model:                   v.Model,
		FuelType:                v.FuelType,
		EngineCapacity:          engineCapacity,
		MaxPower:                maxPower,
		Weight:                  weight,
		ApproximateValue:        approximateValue,
		VehicleTypes:            types,
		UsageType:               v.UsageType,
		ImportedFromAbroad:      v.ImportedFromAbroad,
		HasTechnicalCertificate: v.HasTechnicalCertificate,
	}, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
