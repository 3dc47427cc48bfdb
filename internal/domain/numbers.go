package domain

import (
	"strconv"
	"strings"

	"dotaznik/pkg/apperrors"
)

// ParseOptionalInt coerces textual numeric input from the form. Empty or
// whitespace-only input means the field is absent. Anything non-numeric is
// rejected with a malformed_number error; the UI restricts input types so
// this is a defensive check, not an expected path.
func ParseOptionalInt(raw string) (*int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeMalformedNumber, "not a number: "+trimmed)
	}
	return &value, nil
}
