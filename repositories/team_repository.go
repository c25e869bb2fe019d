package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/soccer-tournament/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists")
	ErrTeamInvalidRef   = errors.New("team references a missing row")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error)
	List(ctx context.Context) ([]models.TeamListRow, error)
	UpdateCaptain(ctx context.Context, exec SQLExecutor, teamID, captainID int) error
	IsPlayerOnTeam(ctx context.Context, exec SQLExecutor, teamID, playerID int) (bool, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `INSERT INTO team (team_name) VALUES ($1) RETURNING team_id`
	err := r.getExecutor(exec).QueryRowContext(ctx, query, team.Name).Scan(&team.ID)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	query := `SELECT team_id, team_name, captain_id FROM team WHERE team_id = $1`
	return r.scanTeam(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error) {
	query := `SELECT team_id, team_name, captain_id FROM team WHERE team_name = $1`
	return r.scanTeam(r.getExecutor(exec).QueryRowContext(ctx, query, name))
}

func (r *postgresTeamRepository) scanTeam(row rowScanner) (*models.Team, error) {
	var team models.Team
	if err := row.Scan(&team.ID, &team.Name, &team.CaptainID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// List returns one row per (team, tournament). Teams that are not registered
// in any tournament still appear, with a NULL tournament. Rejected
// registrations are not counted.
func (r *postgresTeamRepository) List(ctx context.Context) ([]models.TeamListRow, error) {
	query := `
		SELECT
			t.team_id,
			t.team_name,
			tr.tr_id,
			tr.tr_name,
			COUNT(DISTINCT tp.player_id) AS player_count,
			tt.squad_size,
			cap.name AS captain_name
		FROM team t
		LEFT JOIN tournament_team tt ON tt.team_id = t.team_id
		LEFT JOIN tournament tr ON tr.tr_id = tt.tr_id
		LEFT JOIN team_player tp ON tp.team_id = t.team_id AND tp.tr_id = tr.tr_id
			AND tp.status <> 'rejected'
		LEFT JOIN person cap ON cap.kfupm_id = t.captain_id
		GROUP BY t.team_id, t.team_name, tr.tr_id, tr.tr_name, tt.squad_size, cap.name
		ORDER BY t.team_name, tr.tr_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.TeamListRow, 0)
	for rows.Next() {
		var row models.TeamListRow
		if err := rows.Scan(
			&row.TeamID, &row.TeamName, &row.TournamentID, &row.TournamentName,
			&row.PlayerCount, &row.SquadSize, &row.CaptainName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, row)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateCaptain(ctx context.Context, exec SQLExecutor, teamID, captainID int) error {
	query := `UPDATE team SET captain_id = $1 WHERE team_id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, captainID, teamID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) IsPlayerOnTeam(ctx context.Context, exec SQLExecutor, teamID, playerID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM team_player WHERE team_id = $1 AND player_id = $2 AND status <> 'rejected')`
	var exists bool
	if err := r.getExecutor(exec).QueryRowContext(ctx, query, teamID, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check roster membership of player %d in team %d: %w", playerID, teamID, err)
	}
	return exists, nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	classified := classifyPQError(err)
	switch {
	case errors.Is(classified, ErrUniqueViolation):
		return fmt.Errorf("%w: %w", ErrTeamNameConflict, classified)
	case errors.Is(classified, ErrForeignKeyViolation):
		return fmt.Errorf("%w: %w", ErrTeamInvalidRef, classified)
	}
	return classified
}
