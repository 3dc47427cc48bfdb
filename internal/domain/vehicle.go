package domain

// VehicleType classifies the insured vehicle. A submission selects one
// type in the UI but the record keeps a list, matching the stored shape.
type VehicleType string

const (
	VehiclePersonal   VehicleType = "personal"
	VehicleTruck      VehicleType = "truck"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCamper     VehicleType = "camper"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehiclePersonal, VehicleTruck, VehicleMotorcycle, VehicleCamper:
		return true
	}
	return false
}

// UsageType is the declared usage regime of the vehicle.
type UsageType string

const (
	UsageStandard       UsageType = "standard"
	UsageTaxi           UsageType = "taxi"
	UsageCarRental      UsageType = "carRental"
	UsagePriorityRight  UsageType = "priorityRight"
	UsageDrivingSchool  UsageType = "drivingSchool"
	UsageHistoricPlates UsageType = "historicPlates"
)

func (u UsageType) Valid() bool {
	switch u {
	case UsageStandard, UsageTaxi, UsageCarRental, UsagePriorityRight,
		UsageDrivingSchool, UsageHistoricPlates:
		return true
	}
	return false
}

// Vehicle holds the insured vehicle. Exactly one addressing mode is
// populated: a domestic vehicle carries LicensePlate, an imported one the
// full detail set (VIN, brand, model, the numeric figures, type and fuel),
// selected by ImportedFromAbroad.
type Vehicle struct {
	LicensePlate            string        `json:"licensePlate"`
	VIN                     string        `json:"vin"`
	Brand                   string        `json:"brand"`
	Model                   string        `json:"model"`
	FuelType                string        `json:"fuelType,omitempty"`
	EngineCapacity          *int64        `json:"engineCapacity,omitempty"`
	MaxPower                *int64        `json:"maxPower,omitempty"`
	Weight                  *int64        `json:"weight,omitempty"`
	ApproximateValue        *int64        `json:"approximateValue,omitempty"`
	VehicleTypes            []VehicleType `json:"vehicleTypes"`
	UsageType               UsageType     `json:"usageType"`
	ImportedFromAbroad      bool          `json:"importedFromAbroad"`
	HasTechnicalCertificate bool          `json:"hasTechnicalCertificate"`
}
