// File: models/roster.go
package models

// RosterStatus отражает решение администратора по заявке игрока.
type RosterStatus string

const (
	RosterStatusPending  RosterStatus = "pending"
	RosterStatusApproved RosterStatus = "approved"
	RosterStatusRejected RosterStatus = "rejected"
)

// TeamPlayer is a player's roster membership for one tournament. A player
// belongs to at most one team per tournament.
type TeamPlayer struct {
	PlayerID     int          `json:"player_id" db:"player_id"`
	TeamID       int          `json:"team_id" db:"team_id"`
	TournamentID int          `json:"tournament_id" db:"tr_id"`
	Status       RosterStatus `json:"status" db:"status"`
}

// PlayerListRow is one roster registration as shown on the admin review list.
type PlayerListRow struct {
	PlayerID       int          `db:"player_id"`
	PlayerName     string       `db:"name"`
	TeamID         int          `db:"team_id"`
	TeamName       string       `db:"team_name"`
	TournamentID   int          `db:"tr_id"`
	TournamentName string       `db:"tr_name"`
	Position       string       `db:"position_desc"`
	Status         RosterStatus `db:"status"`
}

// RosterPlayerRow is a player line of the team member report.
type RosterPlayerRow struct {
	PlayerID     int     `db:"player_id"`
	Name         string  `db:"name"`
	JerseyNo     int     `db:"jersey_no"`
	PositionCode string  `db:"position_to_play"`
	Position     string  `db:"position_desc"`
	TeamID       *int    `db:"team_id"`
	TeamName     *string `db:"team_name"`
	IsCaptain    bool    `db:"is_captain"`
}

// RosterStaffRow is a support staff line of the team member report.
type RosterStaffRow struct {
	SupportID   int    `db:"support_id"`
	Name        string `db:"name"`
	SupportType string `db:"support_type"`
	Role        string `db:"support_desc"`
	TeamID      int    `db:"team_id"`
	TeamName    string `db:"team_name"`
}
