package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository/memory"
)

func seedLetter(t *testing.T, store *memory.LetterStore, userID, scheduleID string) *model.Letter {
	t.Helper()

	l := &model.Letter{
		UserID:     userID,
		ScheduleID: scheduleID,
		SenderType: model.PersonaMentor,
		SenderName: "Tanaka Sensei",
		Content:    "Dear Mina,",
	}
	if err := store.Create(context.Background(), l); err != nil {
		t.Fatalf("seeding letter: %v", err)
	}
	return l
}

func TestLetterList(t *testing.T) {
	store := memory.NewLetterStore()
	svc := NewLetterService(store, nil, discardLogger())

	seedLetter(t, store, "user-1", "s1")
	seedLetter(t, store, "user-2", "s2")
	seedLetter(t, store, "user-1", "s3")

	got, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].ScheduleID != "s1" || got[1].ScheduleID != "s3" {
		t.Errorf("List() = %+v", got)
	}
	for _, l := range got {
		if l.IsRead() {
			t.Errorf("letter %s should start unread", l.ID)
		}
	}
}

func TestLetterMarkRead_IsIdempotent(t *testing.T) {
	store := memory.NewLetterStore()

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewLetterService(store, clock, discardLogger())
	ctx := context.Background()

	l := seedLetter(t, store, "user-1", "s1")

	first, err := svc.MarkRead(ctx, "user-1", l.ID)
	if err != nil {
		t.Fatalf("first MarkRead() error = %v", err)
	}
	if !first.Equal(now) {
		t.Errorf("readAt = %v, want %v", first, now)
	}

	now = now.Add(time.Hour)
	second, err := svc.MarkRead(ctx, "user-1", l.ID)
	if err != nil {
		t.Fatalf("second MarkRead() error = %v", err)
	}
	if !second.Equal(first) {
		t.Errorf("second readAt = %v, want unchanged %v", second, first)
	}

	list, _ := svc.List(ctx, "user-1")
	if list[0].ReadAt == nil || !list[0].ReadAt.Equal(first) {
		t.Errorf("stored ReadAt = %v, want %v", list[0].ReadAt, first)
	}
}

func TestLetterMarkRead_NotFound(t *testing.T) {
	store := memory.NewLetterStore()
	svc := NewLetterService(store, nil, discardLogger())
	ctx := context.Background()

	l := seedLetter(t, store, "user-1", "s1")

	if _, err := svc.MarkRead(ctx, "user-2", l.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("other owner error = %v, want ErrNotFound", err)
	}
	if _, err := svc.MarkRead(ctx, "user-1", "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing id error = %v, want ErrNotFound", err)
	}
	if _, err := svc.MarkRead(ctx, "user-1", " "); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("blank id error = %v, want ErrValidation", err)
	}
}
