// Package memory provides in-process implementations of the repository
// interfaces. Data lives for the lifetime of the process.
//
// Every store guards its slice with its own RWMutex and hands out copies, so
// callers can never mutate stored records behind the store's back.
package memory

import (
	"time"

	"github.com/rs/xid"
)

// Store bundles the three in-memory stores.
type Store struct {
	users     *UserStore
	schedules *ScheduleStore
	letters   *LetterStore
}

// New creates an empty set of stores.
func New() *Store {
	return &Store{
		users:     NewUserStore(),
		schedules: NewScheduleStore(),
		letters:   NewLetterStore(),
	}
}

func (s *Store) Users() *UserStore         { return s.users }
func (s *Store) Schedules() *ScheduleStore { return s.schedules }
func (s *Store) Letters() *LetterStore     { return s.letters }

// stamp fills in an ID and creation time when the caller did not provide them.
// Seed data supplies its own CreatedAt so "created yesterday" survives.
func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = xid.New().String()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}
