package model

import "time"

// Letter is a generated supportive message tied to exactly one Schedule.
//
// ReadAt is nil until the owner first opens the letter; after that it never changes.
type Letter struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	ScheduleID string      `json:"scheduleId"`
	SenderType PersonaKind `json:"senderType"`
	SenderName string      `json:"senderName,omitempty"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"createdAt"`
	ReadAt     *time.Time  `json:"readAt"`
}

// IsRead reports whether the letter has been opened.
func (l *Letter) IsRead() bool {
	return l.ReadAt != nil
}
