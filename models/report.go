package models

import "time"

// TopScorerRow is the goal aggregate of one player for one team.
type TopScorerRow struct {
	PlayerID    int    `db:"player_id"`
	PlayerName  string `db:"name"`
	TeamName    string `db:"team_name"`
	Tournaments string `db:"tournaments"`
	Goals       int    `db:"goals"`
	Matches     int    `db:"matches"`
}

// RedCardRow is a sending-off with its match context.
type RedCardRow struct {
	PlayerID       int       `db:"player_id"`
	PlayerName     string    `db:"name"`
	TeamName       string    `db:"team_name"`
	MatchNo        int       `db:"match_no"`
	PlayDate       time.Time `db:"play_date"`
	BookingTime    int       `db:"booking_time"`
	PlayHalf       int       `db:"play_half"`
	HomeTeam       string    `db:"home_team"`
	AwayTeam       string    `db:"away_team"`
	TournamentName string    `db:"tr_name"`
}
