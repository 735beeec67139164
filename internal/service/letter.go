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

// LetterService exposes a user's inbox. Letters are written by the generation
// job; this service only reads them and records when they were opened.
type LetterService struct {
	letters repository.LetterRepository
	now     func() time.Time
	logger  *slog.Logger
}

// NewLetterService creates a LetterService. now stamps read times and defaults
// to time.Now when nil.
func NewLetterService(letters repository.LetterRepository, now func() time.Time, logger *slog.Logger) *LetterService {
	if now == nil {
		now = time.Now
	}
	return &LetterService{
		letters: letters,
		now:     now,
		logger:  logger,
	}
}

// List returns the caller's letters in creation order.
func (s *LetterService) List(ctx context.Context, userID string) ([]model.Letter, error) {
	letters, err := s.letters.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/letter: listing letters: %w", err)
	}
	return letters, nil
}

// MarkRead records that the caller opened letter id and returns the read time.
// Repeated calls return the first read time. A letter that doesn't exist or
// belongs to someone else is apperror.ErrNotFound.
func (s *LetterService) MarkRead(ctx context.Context, userID, id string) (time.Time, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return time.Time{}, apperror.ValidationFailed("id", "letter ID is required")
	}

	readAt, err := s.letters.MarkRead(ctx, id, userID, s.now().UTC())
	if err != nil {
		return time.Time{}, err
	}

	s.logger.Debug("letter read",
		slog.String("id", id),
		slog.String("userID", userID),
	)

	return readAt, nil
}
