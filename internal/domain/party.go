package domain

// PartyRole names the three legal-party roles captured per submission.
type PartyRole string

const (
	RoleOperator     PartyRole = "operator"
	RolePolicyHolder PartyRole = "policyHolder"
	RoleOwner        PartyRole = "owner"
)

// Party is one legal party of a submission. The shape is shared by the
// operator, the policy holder and the owner. Both the company and the
// personal branch keep their fields populated; IsCompany discriminates
// which set is binding: TaxID for companies, Name+Address+NationalID for
// physical persons. Phone and Email already carry the executive contact
// for companies — the substitution happens once, at finalization.
type Party struct {
	Name                string `json:"name"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	TaxID               string `json:"taxId"`
	NationalID          string `json:"nationalId"`
	IsCompany           bool   `json:"isCompany"`
	IsVATPayer          bool   `json:"isVatPayer"`
	ExecutiveName       string `json:"executiveName"`
	ExecutiveNationalID string `json:"executiveNationalId"`
	CompanyFirstName    string `json:"companyFirstName"`
	CompanyLastName     string `json:"companyLastName"`
}
