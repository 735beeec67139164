// Package handler contains the HTTP handlers of the API.
//
// Handlers only translate between HTTP and the service layer: they decode the
// request, call a service, and encode the result or map its error with
// writeError. Business rules live in the service package.
package handler

import (
	"net/http"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/auth"
)

// HandleHealth reports that the process is up.
//
// HTTP: GET /health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// callerID returns the authenticated user ID placed in the context by
// auth.RequireAuth.
func callerID(r *http.Request) (string, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok || id.UserID == "" {
		return "", apperror.Unauthorized("authentication required")
	}
	return id.UserID, nil
}
