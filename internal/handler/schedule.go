package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/your-yoda/internal/service"
)

type ScheduleHandler struct {
	schedules *service.ScheduleService
	logger    *slog.Logger
}

func NewScheduleHandler(schedules *service.ScheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedules: schedules,
		logger:    logger,
	}
}

type createScheduleRequest struct {
	Content    string   `json:"content"`
	Date       string   `json:"date"`
	Emotions   []string `json:"emotions"`
	SenderType string   `json:"senderType"`
	SenderName string   `json:"senderName"`
	Detail     string   `json:"detail"`
}

// HandleList returns the caller's schedules.
//
// HTTP: GET /schedules (auth)
func (h *ScheduleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	schedules, err := h.schedules.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, schedules)
}

// HandleCreate stores a schedule for the caller.
//
// HTTP: POST /schedules (auth) → 201 with the created schedule
func (h *ScheduleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req createScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	schedule, err := h.schedules.Create(r.Context(), userID, service.CreateScheduleInput{
		Content:    req.Content,
		Date:       req.Date,
		Emotions:   req.Emotions,
		SenderType: req.SenderType,
		SenderName: req.SenderName,
		Detail:     req.Detail,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, schedule)
}
