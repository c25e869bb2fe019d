package models

import "time"

const (
	// ResultPending marks a match that has not been played yet.
	ResultPending = "TBD"
	ResultWin     = "WIN"
	ResultDraw    = "DRAW"

	StageGroup = "G"
	StageFinal = "F"

	// DecidedNormal: результат определён в основное время.
	DecidedNormal  = "N"
	DecidedPenalty = "P"

	InitialGoalScore = "0-0"
)

// MatchPlayed is a row of match_played. TeamID1 is the home side.
type MatchPlayed struct {
	MatchNo         int       `json:"match_no" db:"match_no"`
	TournamentID    int       `json:"tournament_id" db:"tr_id"`
	PlayStage       string    `json:"play_stage" db:"play_stage"`
	PlayDate        time.Time `json:"play_date" db:"play_date"`
	TeamID1         int       `json:"team_id1" db:"team_id1"`
	TeamID2         int       `json:"team_id2" db:"team_id2"`
	Results         string    `json:"results" db:"results"`
	DecidedBy       string    `json:"decided_by" db:"decided_by"`
	GoalScore       string    `json:"goal_score" db:"goal_score"`
	VenueID         int       `json:"venue_id" db:"venue_id"`
	Audience        int       `json:"audience" db:"audience"`
	PlayerOfMatchID *int      `json:"player_of_match,omitempty" db:"player_of_match"`
	Stop1Sec        int       `json:"stop1_sec" db:"stop1_sec"`
	Stop2Sec        int       `json:"stop2_sec" db:"stop2_sec"`
}

func (m MatchPlayed) IsCompleted() bool {
	return m.Results != ResultPending
}

// MatchRow is a match joined with team, venue and tournament names.
type MatchRow struct {
	MatchNo        int       `db:"match_no"`
	PlayDate       time.Time `db:"play_date"`
	PlayStage      string    `db:"play_stage"`
	Results        string    `db:"results"`
	GoalScore      string    `db:"goal_score"`
	HomeTeam       string    `db:"home_team"`
	AwayTeam       string    `db:"away_team"`
	VenueName      string    `db:"venue_name"`
	TournamentID   int       `db:"tr_id"`
	TournamentName string    `db:"tr_name"`
}
