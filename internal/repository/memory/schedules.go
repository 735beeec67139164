package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

var _ repository.ScheduleRepository = (*ScheduleStore)(nil)

type ScheduleStore struct {
	mu        sync.RWMutex
	schedules []model.Schedule
}

func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{}
}

func (s *ScheduleStore) Create(_ context.Context, schedule *model.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(&schedule.ID, &schedule.CreatedAt)
	stored := *schedule
	stored.Emotions = slices.Clone(schedule.Emotions)
	s.schedules = append(s.schedules, stored)
	return nil
}

func (s *ScheduleStore) ListByOwner(_ context.Context, userID string) ([]model.Schedule, error) {
	return s.filter(func(sc *model.Schedule) bool { return sc.UserID == userID }), nil
}

func (s *ScheduleStore) ListByDate(_ context.Context, date string) ([]model.Schedule, error) {
	return s.filter(func(sc *model.Schedule) bool { return sc.Date == date }), nil
}

func (s *ScheduleStore) filter(keep func(*model.Schedule) bool) []model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Schedule, 0)
	for i := range s.schedules {
		if keep(&s.schedules[i]) {
			sc := s.schedules[i]
			sc.Emotions = slices.Clone(sc.Emotions)
			out = append(out, sc)
		}
	}
	return out
}
