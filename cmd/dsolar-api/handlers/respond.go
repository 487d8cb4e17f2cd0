// Package handlers provides HTTP handlers for the D-Solar assistant API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps err onto a status code and logs server-side failures.
func writeDomainError(w http.ResponseWriter, log *observability.Logger, message string, err error) {
	var de *domain.DomainError
	switch {
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", "")
	case errors.As(err, &de) && de.Type == domain.ErrorTypeValidation:
		writeError(w, http.StatusBadRequest, de.Message, "")
	default:
		log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}
