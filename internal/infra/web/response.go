package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"lecture-quiz/internal/domain"
)

// apiResponse is the envelope every endpoint answers with:
// {success, data?, error?}.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(apiResponse{Success: false, Error: msg})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrBadContentType),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
