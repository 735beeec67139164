// Package seed fills empty stores with a demo account so a fresh server has
// something to show.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/auth"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/persona"
	"github.com/sakif/your-yoda/internal/repository"
)

// Demo account credentials.
const (
	DemoName     = "Mina"
	DemoEmail    = "mina@gmail.com"
	DemoPassword = "password123"
)

// Deps are the stores and helpers the seeder writes through.
type Deps struct {
	Users     repository.UserRepository
	Schedules repository.ScheduleRepository
	Letters   repository.LetterRepository
	Passwords *auth.PasswordService
	Library   *persona.Library
}

// Result reports what a run created.
type Result struct {
	User      *model.User
	Schedules int
	Letters   int
}

// Run seeds the demo account relative to now:
//   - a celebrity schedule for tomorrow
//   - a mentor schedule for today, created yesterday, with its letter
//
// Running it again against the same stores creates nothing new.
func Run(ctx context.Context, deps Deps, now time.Time, logger *slog.Logger) (*Result, error) {
	user, created, err := demoUser(ctx, deps)
	if err != nil {
		return nil, err
	}
	res := &Result{User: user}

	existing, err := deps.Schedules.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("seed: listing demo schedules: %w", err)
	}

	for _, s := range demoSchedules(user.ID, now) {
		if stored, ok := findSchedule(existing, s.Content); ok {
			s = stored
		} else {
			if err := deps.Schedules.Create(ctx, &s); err != nil {
				return nil, fmt.Errorf("seed: creating schedule: %w", err)
			}
			res.Schedules++
		}

		if s.Date != now.Format(model.DateLayout) || s.SenderType != model.PersonaMentor {
			continue
		}

		letter := &model.Letter{
			UserID:     user.ID,
			ScheduleID: s.ID,
			SenderType: s.SenderType,
			SenderName: s.SenderName,
			Content:    deps.Library.Compose(persona.RequestFor(user.Name, &s), persona.Fixed),
			CreatedAt:  now,
		}
		switch err := deps.Letters.Create(ctx, letter); {
		case err == nil:
			res.Letters++
		case errors.Is(err, apperror.ErrConflict):
		default:
			return nil, fmt.Errorf("seed: creating letter: %w", err)
		}
	}

	logger.Info("demo data ready",
		slog.String("email", user.Email),
		slog.Bool("newUser", created),
		slog.Int("schedules", res.Schedules),
		slog.Int("letters", res.Letters),
	)

	return res, nil
}

func demoUser(ctx context.Context, deps Deps) (*model.User, bool, error) {
	user, err := deps.Users.GetByEmail(ctx, DemoEmail)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, fmt.Errorf("seed: looking up demo user: %w", err)
	}

	hash, err := deps.Passwords.Hash(DemoPassword)
	if err != nil {
		return nil, false, fmt.Errorf("seed: hashing demo password: %w", err)
	}

	user = &model.User{Name: DemoName, Email: DemoEmail, PasswordHash: hash}
	if err := deps.Users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("seed: creating demo user: %w", err)
	}
	return user, true, nil
}

func demoSchedules(userID string, now time.Time) []model.Schedule {
	return []model.Schedule{
		{
			UserID:     userID,
			Content:    "Important presentation to the client team",
			Date:       now.AddDate(0, 0, 1).Format(model.DateLayout),
			Emotions:   []model.Emotion{model.EmotionExcited, model.EmotionTense, model.EmotionHopeful},
			SenderType: model.PersonaCelebrity,
			SenderName: "Trump",
			Detail:     "Feeling a mix of excitement and nerves about this presentation",
			CreatedAt:  now,
		},
		{
			UserID:     userID,
			Content:    "Meeting with my team to discuss the next phase of the project",
			Date:       now.Format(model.DateLayout),
			Emotions:   []model.Emotion{model.EmotionConfident, model.EmotionMotivated},
			SenderType: model.PersonaMentor,
			SenderName: "Tanaka Sensei",
			Detail:     "Looking forward to sharing new ideas with the team",
			CreatedAt:  now.AddDate(0, 0, -1),
		},
	}
}

func findSchedule(list []model.Schedule, content string) (model.Schedule, bool) {
	for _, s := range list {
		if s.Content == content {
			return s, true
		}
	}
	return model.Schedule{}, false
}
