package brackets

import "context"

// BracketMatch is one generated pairing. Round is the match day, starting at 1.
type BracketMatch struct {
	UID          string
	Round        int
	OrderInRound int

	HomeTeamID int
	AwayTeamID int
}

type GenerateBracketParams struct {
	TournamentID int
	Group        string
	TeamIDs      []int
	// Legs is 1 (single round-robin) or 2 (home and away).
	Legs int
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}
