// Package export serializes the stored form collection for download by
// the admin dashboard. Both exports are synchronous, operate on the full
// collection, and refuse an empty one so the caller can show a notice
// instead of producing an empty file.
package export

import (
	"fmt"
	"strings"
	"time"

	"dotaznik/internal/domain"
	"dotaznik/pkg/apperrors"
)

// ErrNoForms signals there is nothing to export.
var ErrNoForms = apperrors.New(apperrors.CodeBadRequest, "Žádné formuláře k exportu")

// csvHeader is the fixed column layout expected by the downstream
// spreadsheet workflow. The owner contributes contact columns only.
var csvHeader = []string{
	"ID",
	"Jméno odesílatele",
	"Email odesílatele",
	"Datum vytvoření",
	"Provozovatel - Jméno",
	"Provozovatel - Adresa",
	"Provozovatel - Telefon",
	"Provozovatel - Email",
	"Provozovatel - IČO",
	"Provozovatel - Rodné číslo",
	"Provozovatel - Je firma",
	"Pojistník - Jméno",
	"Pojistník - Adresa",
	"Pojistník - Telefon",
	"Pojistník - Email",
	"Pojistník - IČO",
	"Pojistník - Rodné číslo",
	"Pojistník - Je firma",
	"Vlastník - Jméno",
	"Vlastník - Adresa",
	"Vlastník - Telefon",
	"Vlastník - Email",
	"Typ vozidla",
	"SPZ",
	"VIN",
	"Značka",
	"Model",
	"Způsob užívání",
	"Povinné ručení",
	"Havarijní pojištění",
	"Pojištění skel",
	"Pojištění asistence",
	"Frekvence plateb",
	"Stav tachometru",
	"Poznámky",
	"Stav",
}

// CSV renders the collection as a UTF-8 CSV prefixed with a byte-order
// mark so spreadsheet tools pick up the encoding.
func CSV(forms []domain.Form) ([]byte, error) {
	if len(forms) == 0 {
		return nil, ErrNoForms
	}

	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(csvHeader, ","))
	for _, form := range forms {
		b.WriteByte('\n')
		b.WriteString(csvRow(form))
	}
	return []byte(b.String()), nil
}

func csvRow(f domain.Form) string {
	types := make([]string, 0, len(f.Vehicle.VehicleTypes))
	for _, t := range f.Vehicle.VehicleTypes {
		types = append(types, string(t))
	}

	values := []string{
		f.ID,
		f.SubmitterName,
		f.SubmitterEmail,
		formatDate(f.CreatedAt),
		f.Operator.Name,
		f.Operator.Address,
		f.Operator.Phone,
		f.Operator.Email,
		f.Operator.TaxID,
		f.Operator.NationalID,
		czechBool(f.Operator.IsCompany),
		f.PolicyHolder.Name,
		f.PolicyHolder.Address,
		f.PolicyHolder.Phone,
		f.PolicyHolder.Email,
		f.PolicyHolder.TaxID,
		f.PolicyHolder.NationalID,
		czechBool(f.PolicyHolder.IsCompany),
		f.Owner.Name,
		f.Owner.Address,
		f.Owner.Phone,
		f.Owner.Email,
		strings.Join(types, ";"),
		f.Vehicle.LicensePlate,
		f.Vehicle.VIN,
		f.Vehicle.Brand,
		f.Vehicle.Model,
		string(f.Vehicle.UsageType),
		czechBool(f.InsuranceOptions.Liability),
		czechBool(f.InsuranceOptions.Collision),
		czechBool(f.InsuranceOptions.Glass),
		czechBool(f.InsuranceOptions.Assistance),
		string(f.PaymentFrequency),
		f.Mileage,
		f.Notes,
		statusLabel(f.Status),
	}

	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = escapeCSV(v)
	}
	return strings.Join(escaped, ",")
}

// escapeCSV wraps a value in quotes and doubles internal quotes, but only
// when the value actually contains a comma, quote or newline.
func escapeCSV(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func czechBool(v bool) string {
	if v {
		return "Ano"
	}
	return "Ne"
}

func statusLabel(s domain.FormStatus) string {
	if s == domain.StatusCompleted {
		return "Dokončený"
	}
	return "Rozpracovaný"
}

// formatDate renders a UnixNano timestamp the way the dashboard shows it.
func formatDate(unixNano int64) string {
	return time.Unix(0, unixNano).Format("02.01.2006")
}

// FileName builds the date-stamped download name, e.g. formulare_2026-09-01.csv.
func FileName(extension string, now time.Time) string {
	return fmt.Sprintf("formulare_%s.%s", now.Format("2006-01-02"), extension)
}
