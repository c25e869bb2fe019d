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
	ErrTournamentTeamNotFound = errors.New("team is not registered in tournament")
	ErrTournamentTeamConflict = errors.New("team is already registered in tournament")
)

// TournamentTeamRepository manages tournament_team, which doubles as the
// standings table.
type TournamentTeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, entry *models.TournamentTeam) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.TournamentTeam, error)
	UpdateStats(ctx context.Context, exec SQLExecutor, entry *models.TournamentTeam) error
	ListStandings(ctx context.Context, tournamentID *int) ([]models.StandingRow, error)
	ListTournamentIDs(ctx context.Context) ([]int, error)
	DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresTournamentTeamRepository struct {
	db *sql.DB
}

func NewPostgresTournamentTeamRepository(db *sql.DB) TournamentTeamRepository {
	return &postgresTournamentTeamRepository{db: db}
}

func (r *postgresTournamentTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentTeamRepository) Create(ctx context.Context, exec SQLExecutor, e *models.TournamentTeam) error {
	query := `
		INSERT INTO tournament_team (
			team_id, tr_id, team_group, match_played, won, draw, lost,
			goal_for, goal_against, goal_diff, points, group_position, squad_size
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.getExecutor(exec).ExecContext(ctx, query,
		e.TeamID, e.TournamentID, e.Group, e.MatchesPlayed, e.Won, e.Draw, e.Lost,
		e.GoalsFor, e.GoalsAgainst, e.GoalDiff, e.Points, e.GroupPosition, e.SquadSize,
	)
	if err != nil {
		classified := classifyPQError(err)
		if errors.Is(classified, ErrUniqueViolation) {
			return fmt.Errorf("%w: %w", ErrTournamentTeamConflict, classified)
		}
		return classified
	}
	return nil
}

func (r *postgresTournamentTeamRepository) scanEntry(row rowScanner, e *models.TournamentTeam, extra ...interface{}) error {
	dest := []interface{}{
		&e.TeamID, &e.TournamentID, &e.Group, &e.MatchesPlayed, &e.Won, &e.Draw, &e.Lost,
		&e.GoalsFor, &e.GoalsAgainst, &e.GoalDiff, &e.Points, &e.GroupPosition, &e.SquadSize,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *postgresTournamentTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.TournamentTeam, error) {
	query := `
		SELECT tt.team_id, tt.tr_id, tt.team_group, tt.match_played, tt.won, tt.draw, tt.lost,
		       tt.goal_for, tt.goal_against, tt.goal_diff, tt.points, tt.group_position, tt.squad_size,
		       t.team_name
		FROM tournament_team tt
		JOIN team t ON t.team_id = tt.team_id
		WHERE tt.tr_id = $1
		ORDER BY tt.team_group, tt.team_id`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TournamentTeam, 0)
	for rows.Next() {
		var e models.TournamentTeam
		if err := r.scanEntry(rows, &e, &e.TeamName); err != nil {
			return nil, fmt.Errorf("failed to scan tournament team: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresTournamentTeamRepository) UpdateStats(ctx context.Context, exec SQLExecutor, e *models.TournamentTeam) error {
	query := `
		UPDATE tournament_team SET
			match_played = $1, won = $2, draw = $3, lost = $4,
			goal_for = $5, goal_against = $6, goal_diff = $7,
			points = $8, group_position = $9
		WHERE team_id = $10 AND tr_id = $11`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		e.MatchesPlayed, e.Won, e.Draw, e.Lost,
		e.GoalsFor, e.GoalsAgainst, e.GoalDiff,
		e.Points, e.GroupPosition,
		e.TeamID, e.TournamentID,
	)
	if err != nil {
		return classifyPQError(err)
	}
	return checkAffectedRows(result, ErrTournamentTeamNotFound)
}

func (r *postgresTournamentTeamRepository) ListStandings(ctx context.Context, tournamentID *int) ([]models.StandingRow, error) {
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT tt.team_id, tt.tr_id, tt.team_group, tt.match_played, tt.won, tt.draw, tt.lost,
		       tt.goal_for, tt.goal_against, tt.goal_diff, tt.points, tt.group_position, tt.squad_size,
		       t.team_name, tr.tr_name
		FROM tournament_team tt
		JOIN team t ON t.team_id = tt.team_id
		JOIN tournament tr ON tr.tr_id = tt.tr_id
		WHERE 1=1`)

	query, args := appendFilter(queryBuilder.String(), nil, "tt.tr_id", tournamentID)
	// Позиция 0 означает "ещё не рассчитано" и уходит в конец группы
	query += ` ORDER BY tr.start_date DESC, tt.tr_id, tt.team_group,
		CASE WHEN tt.group_position = 0 THEN 1 ELSE 0 END, tt.group_position, tt.points DESC, t.team_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.StandingRow, 0)
	for rows.Next() {
		var s models.StandingRow
		if err := r.scanEntry(rows, &s.TournamentTeam, &s.TeamName, &s.TournamentName); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresTournamentTeamRepository) ListTournamentIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT tr_id FROM tournament_team ORDER BY tr_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresTournamentTeamRepository) DeleteByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM tournament_team WHERE tr_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete tournament teams of tournament %d: %w", tournamentID, err)
	}
	return nil
}
