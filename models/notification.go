package models

import "time"

const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification describes the outcome of an admin action. TournamentID is set
// when the change belongs to one tournament.
type Notification struct {
	ID           string    `json:"id"`
	Level        string    `json:"level"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	TournamentID *int      `json:"tournament_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
