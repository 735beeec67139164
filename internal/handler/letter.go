package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/your-yoda/internal/service"
)

type LetterHandler struct {
	letters *service.LetterService
	logger  *slog.Logger
}

func NewLetterHandler(letters *service.LetterService, logger *slog.Logger) *LetterHandler {
	return &LetterHandler{
		letters: letters,
		logger:  logger,
	}
}

type markReadResponse struct {
	Success bool      `json:"success"`
	ReadAt  time.Time `json:"readAt"`
}

// HandleList returns the caller's letters, read and unread.
//
// HTTP: GET /letters (auth)
func (h *LetterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	letters, err := h.letters.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, letters)
}

// HandleMarkRead records that the caller opened a letter. Marking an already
// read letter returns the original read time.
//
// HTTP: PATCH /letters/{id}/read (auth) → 200 {success, readAt}; 404 if not the caller's
func (h *LetterHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	readAt, err := h.letters.MarkRead(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, markReadResponse{Success: true, ReadAt: readAt})
}
