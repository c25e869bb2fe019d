package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/soccer-tournament/models"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchInvalidRef = errors.New("match references a missing tournament, team or venue")
	ErrMatchSameTeams  = errors.New("match home and away teams are the same")
)

// MatchFilter narrows List. Zero value returns every match.
type MatchFilter struct {
	TournamentID  *int
	CompletedOnly bool
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.MatchPlayed) error
	GetByID(ctx context.Context, exec SQLExecutor, matchNo int) (*models.MatchPlayed, error)
	GetRow(ctx context.Context, matchNo int) (*models.MatchRow, error)
	List(ctx context.Context, filter MatchFilter) ([]models.MatchRow, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.MatchPlayed, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.MatchPlayed) error
	DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `match_no, tr_id, play_stage, play_date, team_id1, team_id2, results,
	decided_by, goal_score, venue_id, audience, player_of_match, stop1_sec, stop2_sec`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.MatchPlayed) error {
	query := `
		INSERT INTO match_played (
			tr_id, play_stage, play_date, team_id1, team_id2, results,
			decided_by, goal_score, venue_id, audience, player_of_match, stop1_sec, stop2_sec
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING match_no`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		m.TournamentID, m.PlayStage, m.PlayDate, m.TeamID1, m.TeamID2, m.Results,
		m.DecidedBy, m.GoalScore, m.VenueID, m.Audience, m.PlayerOfMatchID, m.Stop1Sec, m.Stop2Sec,
	).Scan(&m.MatchNo)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) scanMatch(row rowScanner, m *models.MatchPlayed) error {
	return row.Scan(
		&m.MatchNo, &m.TournamentID, &m.PlayStage, &m.PlayDate, &m.TeamID1, &m.TeamID2, &m.Results,
		&m.DecidedBy, &m.GoalScore, &m.VenueID, &m.Audience, &m.PlayerOfMatchID, &m.Stop1Sec, &m.Stop2Sec,
	)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, matchNo int) (*models.MatchPlayed, error) {
	query := `SELECT ` + matchColumns + ` FROM match_played WHERE match_no = $1`
	var m models.MatchPlayed
	if err := r.scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, matchNo), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

const matchRowSelect = `
		SELECT m.match_no, m.play_date, m.play_stage, m.results, m.goal_score,
		       t1.team_name AS home_team, t2.team_name AS away_team,
		       v.venue_name, tr.tr_id, tr.tr_name
		FROM match_played m
		JOIN team t1 ON t1.team_id = m.team_id1
		JOIN team t2 ON t2.team_id = m.team_id2
		JOIN venue v ON v.venue_id = m.venue_id
		JOIN tournament tr ON tr.tr_id = m.tr_id`

func scanMatchRow(row rowScanner, m *models.MatchRow) error {
	return row.Scan(
		&m.MatchNo, &m.PlayDate, &m.PlayStage, &m.Results, &m.GoalScore,
		&m.HomeTeam, &m.AwayTeam, &m.VenueName, &m.TournamentID, &m.TournamentName,
	)
}

func (r *postgresMatchRepository) GetRow(ctx context.Context, matchNo int) (*models.MatchRow, error) {
	var m models.MatchRow
	if err := scanMatchRow(r.db.QueryRowContext(ctx, matchRowSelect+` WHERE m.match_no = $1`, matchNo), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List joins each match with both team names, the venue and its tournament
// through match_played.tr_id.
func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]models.MatchRow, error) {
	var qb strings.Builder
	qb.WriteString(matchRowSelect)
	qb.WriteString(` WHERE 1=1`)
	if filter.CompletedOnly {
		qb.WriteString(` AND m.results <> '` + models.ResultPending + `'`)
	}

	query, args := appendFilter(qb.String(), nil, "m.tr_id", filter.TournamentID)
	if filter.CompletedOnly {
		query += ` ORDER BY m.play_date DESC, m.match_no DESC`
	} else {
		query += ` ORDER BY m.play_date, m.match_no`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.MatchRow, 0)
	for rows.Next() {
		var m models.MatchRow
		if err := scanMatchRow(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.MatchPlayed, error) {
	query := `SELECT ` + matchColumns + ` FROM match_played WHERE tr_id = $1 ORDER BY play_date, match_no`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]models.MatchPlayed, 0)
	for rows.Next() {
		var m models.MatchPlayed
		if err := r.scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.MatchPlayed) error {
	query := `
		UPDATE match_played
		SET results = $1, decided_by = $2, goal_score = $3, audience = $4, player_of_match = $5
		WHERE match_no = $6`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		m.Results, m.DecidedBy, m.GoalScore, m.Audience, m.PlayerOfMatchID, m.MatchNo,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// DeleteByTournamentID removes goals, bookings and then the matches
// themselves. Run it inside a transaction.
func (r *postgresMatchRepository) DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	statements := []struct {
		table string
		query string
	}{
		{"goal_details", `DELETE FROM goal_details WHERE match_no IN (SELECT match_no FROM match_played WHERE tr_id = $1)`},
		{"player_booked", `DELETE FROM player_booked WHERE match_no IN (SELECT match_no FROM match_played WHERE tr_id = $1)`},
		{"match_played", `DELETE FROM match_played WHERE tr_id = $1`},
	}
	for _, st := range statements {
		if _, err := executor.ExecContext(ctx, st.query, tournamentID); err != nil {
			return fmt.Errorf("failed to delete %s of tournament %d: %w", st.table, tournamentID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	classified := classifyPQError(err)
	switch {
	case errors.Is(classified, ErrForeignKeyViolation):
		return fmt.Errorf("%w: %w", ErrMatchInvalidRef, classified)
	case errors.Is(classified, ErrCheckViolation) && strings.Contains(classified.Error(), "match_played_teams_check"):
		return fmt.Errorf("%w: %w", ErrMatchSameTeams, classified)
	}
	return classified
}
