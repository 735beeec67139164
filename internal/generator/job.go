// Package generator runs the letter generation job: on every tick it finds
// schedules dated today that have no letter yet and writes one for each.
//
// At runtime the job is the only writer of letters. The letter store's insert
// is an atomic check-and-insert, so a second writer would get a conflict
// rather than a duplicate.
//
// LIFECYCLE:
//
//	New → Start(ctx) → [tick, wait interval, tick, ...] → Stop()
//
// Start launches one goroutine and returns. The goroutine exits when ctx is
// cancelled or Stop closes the done channel; Stop then waits on the WaitGroup,
// so once it returns the loop has exited and no scheduled tick is running. Start or
// Stop called twice is a no-op (sync.Once).
//
// FAILURE MODEL:
// One bad schedule never stops the scan. Errors and panics are caught per
// schedule, counted as Failed, and the schedule is simply retried on the next
// tick because it still has no letter.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/persona"
	"github.com/sakif/your-yoda/internal/repository"
)

// DefaultInterval is how often the job scans when no interval is configured.
const DefaultInterval = time.Minute

// Clock returns the current time. Tests pass a fake to move "today" around.
type Clock func() time.Time

// State is what the job is doing right now.
type State int32

const (
	Idle State = iota
	Scanning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Options tunes the job. Zero values select the defaults.
type Options struct {
	Interval time.Duration
	Clock    Clock
}

// TickResult summarises one scan.
type TickResult struct {
	Date    string // the "today" the tick matched against
	Due     int    // schedules dated today
	Created int
	Skipped int // already had a letter, or the owner no longer exists
	Failed  int
	Err     error // set when the schedule scan itself failed
}

// Job is the letter generation scheduler.
type Job struct {
	users     repository.UserRepository
	schedules repository.ScheduleRepository
	letters   repository.LetterRepository
	library   *persona.Library
	interval  time.Duration
	clock     Clock
	logger    *slog.Logger

	state  atomic.Int32
	tickMu sync.Mutex

	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

func New(
	users repository.UserRepository,
	schedules repository.ScheduleRepository,
	letters repository.LetterRepository,
	library *persona.Library,
	opts Options,
	logger *slog.Logger,
) *Job {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Job{
		users:     users,
		schedules: schedules,
		letters:   letters,
		library:   library,
		interval:  opts.Interval,
		clock:     opts.Clock,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start runs one tick immediately and then one per interval until Stop is
// called or ctx is cancelled. Calling Start more than once has no effect.
func (j *Job) Start(ctx context.Context) {
	j.startOnce.Do(func() {
		j.logger.Info("starting letter generation job", slog.Duration("interval", j.interval))
		j.wg.Add(1)
		go j.run(ctx)
	})
}

// Stop ends the loop and waits for an in-flight tick to finish.
func (j *Job) Stop() {
	j.stopOnce.Do(func() {
		j.logger.Info("stopping letter generation job")
		close(j.done)
	})
	j.wg.Wait()
}

// State reports whether a tick is in progress.
func (j *Job) State() State {
	return State(j.state.Load())
}

func (j *Job) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		j.Tick(ctx)

		select {
		case <-j.done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick performs one scan. Ticks never overlap; a failure on one schedule is
// logged and counted but does not stop the rest of the scan. Nothing is
// retried within a tick: a schedule left without a letter is picked up again
// by the next one.
func (j *Job) Tick(ctx context.Context) TickResult {
	j.tickMu.Lock()
	defer j.tickMu.Unlock()

	j.state.Store(int32(Scanning))
	defer j.state.Store(int32(Idle))

	now := j.clock()
	res := TickResult{Date: now.Format(model.DateLayout)}

	due, err := j.schedules.ListByDate(ctx, res.Date)
	if err != nil {
		res.Err = fmt.Errorf("generator: listing schedules for %s: %w", res.Date, err)
		j.logger.Error("letter generation tick failed",
			slog.String("date", res.Date),
			slog.String("error", err.Error()),
		)
		return res
	}
	res.Due = len(due)

	for i := range due {
		s := &due[i]

		created, err := j.generate(ctx, s, now)
		switch {
		case err != nil:
			res.Failed++
			j.logger.Error("failed to generate letter",
				slog.String("scheduleID", s.ID),
				slog.String("userID", s.UserID),
				slog.String("error", err.Error()),
			)
		case created:
			res.Created++
		default:
			res.Skipped++
		}
	}

	level := slog.LevelDebug
	if res.Created > 0 || res.Failed > 0 {
		level = slog.LevelInfo
	}
	j.logger.Log(ctx, level, "letter generation tick",
		slog.String("date", res.Date),
		slog.Int("due", res.Due),
		slog.Int("created", res.Created),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
	)

	return res
}

// generate writes the letter for one schedule. It reports false with a nil
// error when the schedule needs no letter.
func (j *Job) generate(ctx context.Context, s *model.Schedule, now time.Time) (created bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			created, err = false, fmt.Errorf("generator: panic composing letter: %v", r)
		}
	}()

	exists, err := j.letters.ExistsForSchedule(ctx, s.ID)
	if err != nil {
		return false, fmt.Errorf("generator: checking letter for schedule: %w", err)
	}
	if exists {
		return false, nil
	}

	owner, err := j.users.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			j.logger.Debug("skipping orphaned schedule", slog.String("scheduleID", s.ID))
			return false, nil
		}
		return false, fmt.Errorf("generator: loading owner: %w", err)
	}

	letter := &model.Letter{
		UserID:     s.UserID,
		ScheduleID: s.ID,
		SenderType: s.SenderType,
		SenderName: s.SenderName,
		Content:    j.library.Compose(persona.RequestFor(owner.Name, s), persona.Random),
		CreatedAt:  now,
	}
	if err := j.letters.Create(ctx, letter); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("generator: storing letter: %w", err)
	}

	j.logger.Info("letter generated",
		slog.String("letterID", letter.ID),
		slog.String("scheduleID", s.ID),
		slog.String("userID", s.UserID),
	)

	return true, nil
}
