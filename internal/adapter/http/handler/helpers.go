package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/http/dto"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes. Missing closure
// data gets its own status so the UI can show a specific hint instead of a
// generic calculation error.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRegisterNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingClosingData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRatesUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrTransportFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
