// Package repository declares the store interfaces the services and the
// generation job depend on. Implementations live in the memory and sqlite
// subpackages and own their collections and any locking.
package repository

import (
	"context"
	"time"

	"github.com/sakif/your-yoda/internal/model"
)

// UserRepository holds accounts keyed by ID and by login handle (email).
type UserRepository interface {
	// Create assigns ID and CreatedAt. Returns an apperror.Conflict if the email is taken.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ScheduleRepository holds schedules. Listings are in insertion order.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	ListByOwner(ctx context.Context, userID string) ([]model.Schedule, error)
	ListByDate(ctx context.Context, date string) ([]model.Schedule, error)
}

// LetterRepository holds generated letters. Listings are in insertion order.
type LetterRepository interface {
	// Create assigns ID and CreatedAt unless already set. The existence check and
	// the insert are atomic: a second letter for the same schedule fails with an
	// apperror.Conflict.
	Create(ctx context.Context, letter *model.Letter) error
	ListByOwner(ctx context.Context, userID string) ([]model.Letter, error)
	// MarkRead stamps ReadAt with at on first call and returns the stored value on
	// every later call. Returns apperror.NotFound unless id and owner both match.
	MarkRead(ctx context.Context, id, userID string, at time.Time) (time.Time, error)
	ExistsForSchedule(ctx context.Context, scheduleID string) (bool, error)
}
