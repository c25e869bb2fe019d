package models

// Team представляет команду. Команда не привязана к турниру напрямую,
// участие оформляется через tournament_team.
type Team struct {
	ID        int    `json:"id" db:"team_id"`
	Name      string `json:"name" db:"team_name"`
	CaptainID *int   `json:"captain_id,omitempty" db:"captain_id"`
}

// TeamListRow is one row of the team listing: a team joined to one of its
// tournaments (or to none) with the number of distinct registered players.
type TeamListRow struct {
	TeamID         int     `db:"team_id"`
	TeamName       string  `db:"team_name"`
	TournamentID   *int    `db:"tr_id"`
	TournamentName *string `db:"tr_name"`
	PlayerCount    int     `db:"player_count"`
	SquadSize      *int    `db:"squad_size"`
	CaptainName    *string `db:"captain_name"`
}
