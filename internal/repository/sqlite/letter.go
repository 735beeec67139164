package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

var _ repository.LetterRepository = (*LetterDB)(nil)

// LetterDB is the letters table. The unique index on schedule_id enforces one
// letter per schedule.
type LetterDB struct {
	conn *sql.DB
}

func (l *LetterDB) Create(ctx context.Context, letter *model.Letter) error {
	if letter.ID == "" {
		letter.ID = xid.New().String()
	}
	if letter.CreatedAt.IsZero() {
		letter.CreatedAt = time.Now()
	}

	var readAt sql.NullTime
	if letter.ReadAt != nil {
		readAt = sql.NullTime{Time: *letter.ReadAt, Valid: true}
	}

	_, err := l.conn.ExecContext(ctx,
		`INSERT INTO letters (id, user_id, schedule_id, sender_type, sender_name, content, created_at, read_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		letter.ID,
		letter.UserID,
		letter.ScheduleID,
		string(letter.SenderType),
		letter.SenderName,
		letter.Content,
		letter.CreatedAt,
		readAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("letter for schedule", letter.ScheduleID)
		}
		return fmt.Errorf("sqlite: creating letter for schedule %s: %w", letter.ScheduleID, err)
	}

	return nil
}

func (l *LetterDB) ListByOwner(ctx context.Context, userID string) ([]model.Letter, error) {
	rows, err := l.conn.QueryContext(ctx,
		`SELECT id, user_id, schedule_id, sender_type, sender_name, content, created_at, read_at
		 FROM letters WHERE user_id = ? ORDER BY rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing letters: %w", err)
	}
	defer rows.Close()

	letters := make([]model.Letter, 0)

	for rows.Next() {
		var (
			letter     model.Letter
			senderType string
			readAt     sql.NullTime
		)
		if err := rows.Scan(
			&letter.ID, &letter.UserID, &letter.ScheduleID, &senderType,
			&letter.SenderName, &letter.Content, &letter.CreatedAt, &readAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning letter row: %w", err)
		}
		letter.SenderType = model.PersonaKind(senderType)
		if readAt.Valid {
			t := readAt.Time
			letter.ReadAt = &t
		}
		letters = append(letters, letter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating letters: %w", err)
	}

	return letters, nil
}

// MarkRead only writes when read_at is still NULL, so a repeated or concurrent
// call returns the first timestamp instead of overwriting it.
func (l *LetterDB) MarkRead(ctx context.Context, id, userID string, at time.Time) (time.Time, error) {
	_, err := l.conn.ExecContext(ctx,
		`UPDATE letters SET read_at = ? WHERE id = ? AND user_id = ? AND read_at IS NULL`,
		at, id, userID,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: marking letter %s read: %w", id, err)
	}

	var readAt sql.NullTime
	err = l.conn.QueryRowContext(ctx,
		`SELECT read_at FROM letters WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&readAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, apperror.NotFound("letter", id)
		}
		return time.Time{}, fmt.Errorf("sqlite: reading letter %s: %w", id, err)
	}
	if !readAt.Valid {
		return time.Time{}, fmt.Errorf("sqlite: letter %s has no read_at after update", id)
	}

	return readAt.Time, nil
}

func (l *LetterDB) ExistsForSchedule(ctx context.Context, scheduleID string) (bool, error) {
	var exists bool
	err := l.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM letters WHERE schedule_id = ?)`,
		scheduleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking letter for schedule %s: %w", scheduleID, err)
	}
	return exists, nil
}
