package model

import "time"

// DateLayout is the calendar-date format used for Schedule.Date and for the
// generation job's notion of "today".
const DateLayout = "2006-01-02"

// Schedule is a user's plan for a target date, with the emotions they feel about
// it and the persona who should write back. Schedules are never mutated.
type Schedule struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Content    string      `json:"content"`
	Date       string      `json:"date"` // YYYY-MM-DD, no time zone
	Emotions   []Emotion   `json:"emotions"`
	SenderType PersonaKind `json:"senderType"`
	SenderName string      `json:"senderName,omitempty"`
	Detail     string      `json:"detail,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}
