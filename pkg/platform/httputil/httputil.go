// Package httputil centralizes JSON response writing so handlers stay
// consistent about status mapping and error body shape.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"dotaznik/pkg/apperrors"
)

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteError maps an error to its HTTP status and writes the standard
// error body. Internal errors omit the description so storage and
// infrastructure details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	body := errorBody{Error: string(code)}
	if code != apperrors.CodeInternal {
		var coded *apperrors.Error
		if errors.As(err, &coded) {
			body.ErrorDescription = coded.Message
		} else {
			body.ErrorDescription = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
