// File: repositories/roster_repository.go
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/lib/pq"
)

var ErrRosterEntryNotFound = errors.New("roster entry not found")

// RosterRepository covers team_player (player registrations) and
// team_support (staff) rows.
type RosterRepository interface {
	ListPlayers(ctx context.Context) ([]models.PlayerListRow, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, playerID, tournamentID int, status models.RosterStatus) error
	ListRosterPlayers(ctx context.Context, teamID *int) ([]models.RosterPlayerRow, error)
	ListRosterStaff(ctx context.Context, teamID *int) ([]models.RosterStaffRow, error)
	ListReminderRecipients(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) ([]models.ReminderRecipient, error)
	DeletePlayersByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
	DeleteSupportByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRosterRepository) ListPlayers(ctx context.Context) ([]models.PlayerListRow, error) {
	query := `
		SELECT tp.player_id, p.name, tp.team_id, t.team_name, tp.tr_id, tr.tr_name,
		       COALESCE(pp.position_desc, ''), tp.status
		FROM team_player tp
		JOIN person p ON p.kfupm_id = tp.player_id
		JOIN team t ON t.team_id = tp.team_id
		JOIN tournament tr ON tr.tr_id = tp.tr_id
		JOIN player pl ON pl.player_id = tp.player_id
		LEFT JOIN playing_position pp ON pp.position_id = pl.position_to_play
		ORDER BY tr.start_date DESC, t.team_name, p.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster registrations: %w", err)
	}
	defer rows.Close()

	players := make([]models.PlayerListRow, 0)
	for rows.Next() {
		var p models.PlayerListRow
		if err := rows.Scan(
			&p.PlayerID, &p.PlayerName, &p.TeamID, &p.TeamName,
			&p.TournamentID, &p.TournamentName, &p.Position, &p.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster registration: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresRosterRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, playerID, tournamentID int, status models.RosterStatus) error {
	query := `UPDATE team_player SET status = $1 WHERE player_id = $2 AND tr_id = $3`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, string(status), playerID, tournamentID)
	if err != nil {
		return classifyPQError(err)
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

// ListRosterPlayers returns every player; teamID narrows the list to one
// team's registrations. Rejected registrations are ignored, and players left
// without one are only included when no team filter is given.
func (r *postgresRosterRepository) ListRosterPlayers(ctx context.Context, teamID *int) ([]models.RosterPlayerRow, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT pl.player_id, p.name, pl.jersey_no, pl.position_to_play,
		       COALESCE(pp.position_desc, pl.position_to_play),
		       t.team_id, t.team_name,
		       COALESCE(t.captain_id = pl.player_id, FALSE) AS is_captain
		FROM player pl
		JOIN person p ON p.kfupm_id = pl.player_id
		LEFT JOIN playing_position pp ON pp.position_id = pl.position_to_play
		LEFT JOIN team_player tp ON tp.player_id = pl.player_id AND tp.status <> 'rejected'
		LEFT JOIN team t ON t.team_id = tp.team_id
		WHERE 1=1`)

	query, args := appendFilter(qb.String(), nil, "t.team_id", teamID)
	query += ` ORDER BY t.team_name NULLS LAST, pl.jersey_no, p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster players: %w", err)
	}
	defer rows.Close()

	players := make([]models.RosterPlayerRow, 0)
	seen := make(map[[2]int]bool)
	for rows.Next() {
		var p models.RosterPlayerRow
		if err := rows.Scan(
			&p.PlayerID, &p.Name, &p.JerseyNo, &p.PositionCode, &p.Position,
			&p.TeamID, &p.TeamName, &p.IsCaptain,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster player: %w", err)
		}
		// Игрок может числиться за одной командой в нескольких турнирах
		key := [2]int{p.PlayerID, 0}
		if p.TeamID != nil {
			key[1] = *p.TeamID
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresRosterRepository) ListRosterStaff(ctx context.Context, teamID *int) ([]models.RosterStaffRow, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT DISTINCT ts.support_id, p.name, ts.support_type, s.support_desc, t.team_id, t.team_name
		FROM team_support ts
		JOIN person p ON p.kfupm_id = ts.support_id
		JOIN support s ON s.support_type = ts.support_type
		JOIN team t ON t.team_id = ts.team_id
		WHERE 1=1`)

	query, args := appendFilter(qb.String(), nil, "t.team_id", teamID)
	query += ` ORDER BY t.team_name, s.support_desc, p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster staff: %w", err)
	}
	defer rows.Close()

	staff := make([]models.RosterStaffRow, 0)
	for rows.Next() {
		var s models.RosterStaffRow
		if err := rows.Scan(&s.SupportID, &s.Name, &s.SupportType, &s.Role, &s.TeamID, &s.TeamName); err != nil {
			return nil, fmt.Errorf("failed to scan roster staff: %w", err)
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// ListReminderRecipients returns players and staff of the given teams in one
// tournament that have an email address.
func (r *postgresRosterRepository) ListReminderRecipients(ctx context.Context, exec SQLExecutor, tournamentID int, teamIDs []int) ([]models.ReminderRecipient, error) {
	if len(teamIDs) == 0 {
		return []models.ReminderRecipient{}, nil
	}
	query := `
		SELECT p.kfupm_id, p.name, p.email
		FROM person p
		WHERE p.email IS NOT NULL AND p.email <> ''
		  AND p.kfupm_id IN (
			SELECT tp.player_id FROM team_player tp
			WHERE tp.tr_id = $1 AND tp.team_id = ANY($2) AND tp.status <> 'rejected'
			UNION
			SELECT ts.support_id FROM team_support ts
			WHERE ts.tr_id = $1 AND ts.team_id = ANY($2)
		  )
		ORDER BY p.name`

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID, pq.Array(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder recipients: %w", err)
	}
	defer rows.Close()

	recipients := make([]models.ReminderRecipient, 0)
	for rows.Next() {
		var rc models.ReminderRecipient
		if err := rows.Scan(&rc.PersonID, &rc.Name, &rc.Email); err != nil {
			return nil, fmt.Errorf("failed to scan reminder recipient: %w", err)
		}
		recipients = append(recipients, rc)
	}
	return recipients, rows.Err()
}

func (r *postgresRosterRepository) DeletePlayersByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM team_player WHERE tr_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete team players of tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresRosterRepository) DeleteSupportByTournamentID(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM team_support WHERE tr_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete team support of tournament %d: %w", tournamentID, err)
	}
	return nil
}
