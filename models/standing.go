package models

// Points awarded per result.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// DefaultGroup is the group a freshly registered team is placed in.
const DefaultGroup = "A"

// TournamentTeam is the junction between a team and a tournament and also
// the team's standings row in that tournament.
type TournamentTeam struct {
	TeamID        int    `json:"team_id" db:"team_id"`
	TournamentID  int    `json:"tournament_id" db:"tr_id"`
	Group         string `json:"group" db:"team_group"`
	MatchesPlayed int    `json:"matches_played" db:"match_played"`
	Won           int    `json:"won" db:"won"`
	Draw          int    `json:"draw" db:"draw"`
	Lost          int    `json:"lost" db:"lost"`
	GoalsFor      int    `json:"goals_for" db:"goal_for"`
	GoalsAgainst  int    `json:"goals_against" db:"goal_against"`
	GoalDiff      int    `json:"goal_diff" db:"goal_diff"`
	Points        int    `json:"points" db:"points"`
	GroupPosition int    `json:"group_position" db:"group_position"`
	SquadSize     int    `json:"squad_size" db:"squad_size"`

	// Заполняется сервисом, в таблице не хранится
	TeamName string `json:"team_name,omitempty" db:"-"`
}

// ResetStats zeroes every statistic while keeping identity and group.
func (tt *TournamentTeam) ResetStats() {
	tt.MatchesPlayed = 0
	tt.Won = 0
	tt.Draw = 0
	tt.Lost = 0
	tt.GoalsFor = 0
	tt.GoalsAgainst = 0
	tt.GoalDiff = 0
	tt.Points = 0
	tt.GroupPosition = 0
}

// StandingRow is a standings entry joined with team and tournament names.
type StandingRow struct {
	TournamentTeam
	TournamentName string `db:"tr_name"`
}
