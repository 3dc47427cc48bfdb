package export

import (
	"encoding/json"
	"strconv"

	"dotaznik/internal/domain"
)

// jsonVehicle mirrors domain.Vehicle with the large integer figures as
// strings, so consumers with float-based JSON numbers cannot lose
// precision on them.
type jsonVehicle struct {
	LicensePlate            string               `json:"licensePlate"`
	VIN                     string               `json:"vin"`
	Brand                   string               `json:"brand"`
	Model                   string               `json:"model"`
	FuelType                string               `json:"fuelType,omitempty"`
	EngineCapacity          *string              `json:"engineCapacity,omitempty"`
	MaxPower                *string              `json:"maxPower,omitempty"`
	Weight                  *string              `json:"weight,omitempty"`
	ApproximateValue        *string              `json:"approximateValue,omitempty"`
	VehicleTypes            []domain.VehicleType `json:"vehicleTypes"`
	UsageType               domain.UsageType     `json:"usageType"`
	ImportedFromAbroad      bool                 `json:"importedFromAbroad"`
	HasTechnicalCertificate bool                 `json:"hasTechnicalCertificate"`
}

// jsonForm mirrors domain.Form with nanosecond timestamps as strings.
type jsonForm struct {
	ID                   string                  `json:"id"`
	Status               domain.FormStatus       `json:"status"`
	Operator             domain.Party            `json:"operator"`
	PolicyHolder         domain.Party            `json:"policyHolder"`
	Owner                domain.Party            `json:"owner"`
	Vehicle              jsonVehicle             `json:"vehicle"`
	InsuranceOptions     domain.InsuranceOptions `json:"insuranceOptions"`
	PaymentFrequency     domain.PaymentFrequency `json:"paymentFrequency"`
	Mileage              string                  `json:"mileage,omitempty"`
	Notes                string                  `json:"notes"`
	OperatorAppliesToAll bool                    `json:"operatorAppliesToAll"`
	CreatedAt            string                  `json:"createdAt"`
	UpdatedAt            string                  `json:"updatedAt"`
	ViewedByAdmin        bool                    `json:"viewedByAdmin"`
	SubmitterName        string                  `json:"submitterName"`
	SubmitterEmail       string                  `json:"submitterEmail"`
}

// JSON renders the collection as an indented record array with all
// bigint-like fields stringified.
func JSON(forms []domain.Form) ([]byte, error) {
	if len(forms) == 0 {
		return nil, ErrNoForms
	}

	out := make([]jsonForm, 0, len(forms))
	for _, f := range forms {
		out = append(out, jsonForm{
			ID:           f.ID,
			Status:       f.Status,
			Operator:     f.Operator,
			PolicyHolder: f.PolicyHolder,
			Owner:        f.Owner,
			Vehicle: jsonVehicle{
				LicensePlate:            f.Vehicle.LicensePlate,
				VIN:                     f.Vehicle.VIN,
				Brand:                   f.Vehicle.Brand,
				Model:                   f.Vehicle.Model,
				FuelType:                f.Vehicle.FuelType,
				EngineCapacity:          stringifyInt(f.Vehicle.EngineCapacity),
				MaxPower:                stringifyInt(f.Vehicle.MaxPower),
				Weight:                  stringifyInt(f.Vehicle.Weight),
				ApproximateValue:        stringifyInt(f.Vehicle.ApproximateValue),
				VehicleTypes:            f.Vehicle.VehicleTypes,
				UsageType:               f.Vehicle.UsageType,
				ImportedFromAbroad:      f.Vehicle.ImportedFromAbroad,
				HasTechnicalCertificate: f.Vehicle.HasTechnicalCertificate,
			},
			InsuranceOptions:     f.InsuranceOptions,
			PaymentFrequency:     f.PaymentFrequency,
			Mileage:              f.Mileage,
			Notes:                f.Notes,
			OperatorAppliesToAll: f.OperatorAppliesToAll,
			CreatedAt:            strconv.FormatInt(f.CreatedAt, 10),
			UpdatedAt:            strconv.FormatInt(f.UpdatedAt, 10),
			ViewedByAdmin:        f.ViewedByAdmin,
			SubmitterName:        f.SubmitterName,
			SubmitterEmail:       f.SubmitterEmail,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func stringifyInt(v *int64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatInt(*v, 10)
	return &s
}
