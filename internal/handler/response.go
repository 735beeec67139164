package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/your-yoda/internal/apperror"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx API response:
//
//	{"error": "not_found", "message": "letter abc123 not found"}
type ErrorResponse struct {
	Error   string `json:"error"` // apperror.Code
	Message string `json:"message"`
}

// writeJSON sends data with status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

var statusByCode = map[string]int{
	"validation_error": http.StatusBadRequest,
	"unauthorized":     http.StatusUnauthorized,
	"forbidden":        http.StatusForbidden,
	"not_found":        http.StatusNotFound,
	"conflict":         http.StatusConflict,
}

// writeError sends err as an ErrorResponse. Anything outside the apperror
// taxonomy is logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code := apperror.Code(err)
		if status, ok := statusByCode[code]; ok {
			writeJSON(w, status, ErrorResponse{Error: code, Message: appErr.Message})
			return
		}
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads a JSON body into dst. Malformed or oversized bodies come
// back as validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperror.ValidationFailed("body",
				fmt.Sprintf("request body must be %d bytes or less", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("body", "request body is required")
		default:
			return apperror.ValidationFailed("body", "request body must be valid JSON")
		}
	}
	return nil
}
