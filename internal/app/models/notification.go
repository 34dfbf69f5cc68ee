package models

import (
	"time"
)

// Notification is a per-user message shown in the frontend bell menu.
// Rows are created by admins (bulk send) or by the daily worker jobs.
type Notification struct {
	ID        int64             `json:"id" db:"id"`
	UserID    int64             `json:"userId" db:"user_id"`
	Title     string            `json:"title" db:"title"`
	Message   string            `json:"message" db:"message"`
	Level     NotificationLevel `json:"level" db:"level"`
	IsRead    bool              `json:"isRead" db:"is_read"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}
