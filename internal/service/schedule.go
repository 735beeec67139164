// Package service holds the business rules that sit between the HTTP handlers
// and the stores:
//
//	Handler (HTTP) → Service (validation, rules) → Repository (storage)
//
// Services accept plain values, never *http.Request, and report failures as
// apperror values that the handler layer maps to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

const (
	MaxContentLength    = 1000
	MaxDetailLength     = 2000
	MaxSenderNameLength = 100
)

// CreateScheduleInput is the raw submission from the client. Enumerated fields
// arrive as strings and are parsed here.
type CreateScheduleInput struct {
	Content    string
	Date       string
	Emotions   []string
	SenderType string
	SenderName string
	Detail     string
}

// ScheduleService validates and stores schedules.
type ScheduleService struct {
	schedules repository.ScheduleRepository
	logger    *slog.Logger
}

func NewScheduleService(schedules repository.ScheduleRepository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		schedules: schedules,
		logger:    logger,
	}
}

// Create validates in and stores a schedule owned by userID.
//
// Emotions are de-duplicated in submission order. The legacy sender type
// "famous" is stored as "celebrity". A persona name is optional for every kind;
// letters fall back to a generic signature when it is missing.
func (s *ScheduleService) Create(ctx context.Context, userID string, in CreateScheduleInput) (*model.Schedule, error) {
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "owner is required")
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}
	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, apperror.ValidationFailed("date", "date is required")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperror.ValidationFailed("date", "date must be formatted YYYY-MM-DD")
	}

	emotions, err := parseEmotions(in.Emotions)
	if err != nil {
		return nil, err
	}

	kind, ok := model.ParsePersonaKind(in.SenderType)
	if !ok {
		return nil, apperror.ValidationFailed("senderType",
			fmt.Sprintf("unknown sender type %q", in.SenderType))
	}

	senderName := strings.TrimSpace(in.SenderName)
	if len(senderName) > MaxSenderNameLength {
		return nil, apperror.ValidationFailed("senderName",
			fmt.Sprintf("sender name must be %d characters or less", MaxSenderNameLength))
	}

	detail := strings.TrimSpace(in.Detail)
	if len(detail) > MaxDetailLength {
		return nil, apperror.ValidationFailed("detail",
			fmt.Sprintf("detail must be %d characters or less", MaxDetailLength))
	}

	schedule := &model.Schedule{
		UserID:     userID,
		Content:    content,
		Date:       date,
		Emotions:   emotions,
		SenderType: kind,
		SenderName: senderName,
		Detail:     detail,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		s.logger.Error("failed to create schedule",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/schedule: creating schedule: %w", err)
	}

	s.logger.Info("schedule created",
		slog.String("id", schedule.ID),
		slog.String("userID", userID),
		slog.String("date", schedule.Date),
	)

	return schedule, nil
}

// List returns the caller's schedules in creation order.
func (s *ScheduleService) List(ctx context.Context, userID string) ([]model.Schedule, error) {
	schedules, err := s.schedules.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/schedule: listing schedules: %w", err)
	}
	return schedules, nil
}

func parseEmotions(raw []string) ([]model.Emotion, error) {
	if len(raw) == 0 {
		return nil, apperror.ValidationFailed("emotions", "at least one emotion is required")
	}

	emotions := make([]model.Emotion, 0, len(raw))
	for _, r := range raw {
		e, ok := model.ParseEmotion(r)
		if !ok {
			return nil, apperror.ValidationFailed("emotions", fmt.Sprintf("unknown emotion %q", r))
		}
		if !model.HasEmotion(emotions, e) {
			emotions = append(emotions, e)
		}
	}
	return emotions, nil
}
