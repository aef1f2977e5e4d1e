package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mesai/overtime"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// respondCoreError maps the core's discriminated errors onto HTTP statuses:
// validation failures are the user's to fix, authorization failures are
// contract violations the UI should never produce.
func respondCoreError(w http.ResponseWriter, err error) {
	var validation *overtime.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": validation.Message,
			"code":  validation.Code,
		})
		return
	}
	var authz *overtime.AuthorizationError
	if errors.As(err, &authz) {
		respondError(w, http.StatusForbidden, authz.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
