package domain

// InsuranceOptions is the set of coverage flags selected for a submission.
// At least one of the two primary products (Liability, Collision) must be
// selected for the submission to be valid.
type InsuranceOptions struct {
	Liability          bool `json:"liability"`
	Collision          bool `json:"collision"`
	Glass              bool `json:"glass"`
	Assistance         bool `json:"assistance"`
	NaturalHazards     bool `json:"naturalHazards"`
	GAP                bool `json:"gap"`
	ReplacementVehicle bool `json:"replacementVehicle"`
	Accident           bool `json:"accident"`
}

// PrimarySelected reports whether at least one primary coverage is on.
func (o InsuranceOptions) PrimarySelected() bool {
	return o.Liability || o.Collision
}

// PaymentFrequency enumerates the premium payment schedules. There is no
// default — an unset frequency is a validation error, not a fallback.
type PaymentFrequency string

const (
	PayQuarterly  PaymentFrequency = "quarterly"
	PaySemiannual PaymentFrequency = "semiannual"
	PayAnnual     PaymentFrequency = "annual"
)

func (p PaymentFrequency) Valid() bool {
	switch p {
	case PayQuarterly, PaySemiannual, PayAnnual:
		return true
	}
	return false
}

// FormStatus is the lifecycle state of a stored form. Drafts exist only as
// transient editor state; every record that reaches storage is completed.
type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusCompleted FormStatus = "completed"
)

// Form is the immutable submission record sent to and returned from the
// persistence service. Timestamps are UnixNano. Owner is always populated;
// when OperatorAppliesToAll is set it mirrors Operator.
type Form struct {
	ID                   string           `json:"id"`
	Status               FormStatus       `json:"status"`
	Operator             Party            `json:"operator"`
	PolicyHolder         Party            `json:"policyHolder"`
	Owner                Party            `json:"owner"`
	Vehicle              Vehicle          `json:"vehicle"`
	InsuranceOptions     InsuranceOptions `json:"insuranceOptions"`
	PaymentFrequency     PaymentFrequency `json:"paymentFrequency"`
	Mileage              string           `json:"mileage,omitempty"`
	Notes                string           `json:"notes"`
	OperatorAppliesToAll bool             `json:"operatorAppliesToAll"`
	CreatedAt            int64            `json:"createdAt"`
	UpdatedAt            int64            `json:"updatedAt"`
	ViewedByAdmin        bool             `json:"viewedByAdmin"`
	SubmitterName        string           `json:"submitterName"`
	SubmitterEmail       string           `json:"submitterEmail"`
}
