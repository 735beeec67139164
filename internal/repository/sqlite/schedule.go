package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

var _ repository.ScheduleRepository = (*ScheduleDB)(nil)

// ScheduleDB is the schedules table. Emotions are stored as a JSON array.
type ScheduleDB struct {
	conn *sql.DB
}

const scheduleColumns = `id, user_id, content, date, emotions, sender_type, sender_name, detail, created_at`

func (s *ScheduleDB) Create(ctx context.Context, schedule *model.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = xid.New().String()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now()
	}

	emotions, err := json.Marshal(schedule.Emotions)
	if err != nil {
		return fmt.Errorf("sqlite: encoding emotions: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO schedules (`+scheduleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		schedule.ID,
		schedule.UserID,
		schedule.Content,
		schedule.Date,
		string(emotions),
		string(schedule.SenderType),
		schedule.SenderName,
		schedule.Detail,
		schedule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating schedule: %w", err)
	}

	return nil
}

func (s *ScheduleDB) ListByOwner(ctx context.Context, userID string) ([]model.Schedule, error) {
	return s.list(ctx, `WHERE user_id = ?`, userID)
}

func (s *ScheduleDB) ListByDate(ctx context.Context, date string) ([]model.Schedule, error) {
	return s.list(ctx, `WHERE date = ?`, date)
}

func (s *ScheduleDB) list(ctx context.Context, where string, arg any) ([]model.Schedule, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules `+where+` ORDER BY rowid`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing schedules: %w", err)
	}
	defer rows.Close()

	schedules := make([]model.Schedule, 0)

	for rows.Next() {
		var (
			sc         model.Schedule
			emotions   string
			senderType string
		)
		if err := rows.Scan(
			&sc.ID, &sc.UserID, &sc.Content, &sc.Date, &emotions,
			&senderType, &sc.SenderName, &sc.Detail, &sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning schedule row: %w", err)
		}
		if err := json.Unmarshal([]byte(emotions), &sc.Emotions); err != nil {
			return nil, fmt.Errorf("sqlite: decoding emotions of schedule %s: %w", sc.ID, err)
		}
		sc.SenderType = model.PersonaKind(senderType)
		schedules = append(schedules, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating schedules: %w", err)
	}

	return schedules, nil
}
