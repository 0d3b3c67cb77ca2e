package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sacirovic/rallebola/internal/service"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps a service-layer error to an HTTP error response.
// Unrecognized errors become a 500 with a generic message so internals
// never leak to clients.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIllegalTransition):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConflict):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		jsonError(w, http.StatusForbidden, err.Error())
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
