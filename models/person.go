package models

import "time"

// Person is the base identity for players and support staff. ID is the
// external institutional identifier.
type Person struct {
	ID          int        `json:"id" db:"kfupm_id"`
	Name        string     `json:"name" db:"name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Email       *string    `json:"email,omitempty" db:"email"`
}

type Player struct {
	ID             int    `json:"id" db:"player_id"`
	JerseyNo       int    `json:"jersey_no" db:"jersey_no"`
	PositionToPlay string `json:"position_to_play" db:"position_to_play"`
}

type PlayingPosition struct {
	ID          string `json:"id" db:"position_id"`
	Description string `json:"description" db:"position_desc"`
}

// SupportRole is a lookup of staff roles (coach, assistant coach, referee...).
type SupportRole struct {
	Type        string `json:"type" db:"support_type"`
	Description string `json:"description" db:"support_desc"`
}

type TeamSupport struct {
	SupportID    int    `json:"support_id" db:"support_id"`
	TeamID       int    `json:"team_id" db:"team_id"`
	TournamentID int    `json:"tournament_id" db:"tr_id"`
	SupportType  string `json:"support_type" db:"support_type"`
}

// ReminderRecipient is a rostered person that can receive match reminders.
type ReminderRecipient struct {
	PersonID int    `db:"kfupm_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
}
