package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTournamentInUse        = errors.New("tournament is referenced by other rows")
	ErrTournamentInvalidDates = errors.New("tournament start date is after end date")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	UpdateDates(ctx context.Context, exec SQLExecutor, id int, start, end time.Time) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament (tr_name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING tr_id`

	err := executor.QueryRowContext(ctx, query, t.Name, t.StartDate, t.EndDate).Scan(&t.ID)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `SELECT tr_id, tr_name, start_date, end_date FROM tournament WHERE tr_id = $1`
	return r.scanTournament(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Tournament, error) {
	query := `SELECT tr_id, tr_name, start_date, end_date FROM tournament WHERE tr_name = $1`
	return r.scanTournament(r.getExecutor(exec).QueryRowContext(ctx, query, name))
}

func (r *postgresTournamentRepository) scanTournament(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}
	if err := row.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT tr_id, tr_name, start_date, end_date
		FROM tournament
		ORDER BY start_date DESC, tr_id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", scanErr)
		}
		tournaments = append(tournaments, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateDates(ctx context.Context, exec SQLExecutor, id int, start, end time.Time) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournament SET start_date = $1, end_date = $2 WHERE tr_id = $3`
	result, err := executor.ExecContext(ctx, query, start, end, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes only the tournament row. Callers must delete dependent rows
// first (see TournamentService.DeleteTournament).
func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM tournament WHERE tr_id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	classified := classifyPQError(err)
	switch {
	case errors.Is(classified, ErrUniqueViolation):
		return fmt.Errorf("%w: %w", ErrTournamentNameConflict, classified)
	case errors.Is(classified, ErrForeignKeyViolation):
		// Удаление турнира, на который ещё ссылаются зависимые строки
		return fmt.Errorf("%w: %w", ErrTournamentInUse, classified)
	case errors.Is(classified, ErrCheckViolation):
		return fmt.Errorf("%w: %w", ErrTournamentInvalidDates, classified)
	}
	return classified
}
