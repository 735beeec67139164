package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

var _ repository.LetterRepository = (*LetterStore)(nil)

type LetterStore struct {
	mu      sync.RWMutex
	letters []model.Letter
}

func NewLetterStore() *LetterStore {
	return &LetterStore{}
}

func (s *LetterStore) Create(_ context.Context, letter *model.Letter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.letters {
		if l.ScheduleID == letter.ScheduleID {
			return apperror.Conflict("letter for schedule", letter.ScheduleID)
		}
	}

	stamp(&letter.ID, &letter.CreatedAt)
	s.letters = append(s.letters, copyLetter(letter))
	return nil
}

func (s *LetterStore) ListByOwner(_ context.Context, userID string) ([]model.Letter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Letter, 0)
	for i := range s.letters {
		if s.letters[i].UserID == userID {
			out = append(out, copyLetter(&s.letters[i]))
		}
	}
	return out, nil
}

func (s *LetterStore) MarkRead(_ context.Context, id, userID string, at time.Time) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.letters {
		l := &s.letters[i]
		if l.ID != id || l.UserID != userID {
			continue
		}
		if l.ReadAt == nil {
			readAt := at
			l.ReadAt = &readAt
		}
		return *l.ReadAt, nil
	}
	return time.Time{}, apperror.NotFound("letter", id)
}

func (s *LetterStore) ExistsForSchedule(_ context.Context, scheduleID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.letters {
		if l.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

// copyLetter detaches ReadAt so the stored pointer is never shared.
func copyLetter(l *model.Letter) model.Letter {
	c := *l
	if l.ReadAt != nil {
		readAt := *l.ReadAt
		c.ReadAt = &readAt
	}
	return c
}
