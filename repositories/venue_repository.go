package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/soccer-tournament/models"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueNameConflict = errors.New("venue name already exists")
)

type VenueRepository interface {
	Create(ctx context.Context, exec SQLExecutor, venue *models.Venue) error
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresVenueRepository) Create(ctx context.Context, exec SQLExecutor, v *models.Venue) error {
	query := `
		INSERT INTO venue (venue_name, venue_status, venue_capacity)
		VALUES ($1, $2, $3)
		RETURNING venue_id`
	err := r.getExecutor(exec).QueryRowContext(ctx, query, v.Name, v.Status, v.Capacity).Scan(&v.ID)
	if err != nil {
		classified := classifyPQError(err)
		if errors.Is(classified, ErrUniqueViolation) {
			return fmt.Errorf("%w: %w", ErrVenueNameConflict, classified)
		}
		return classified
	}
	return nil
}

func (r *postgresVenueRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Venue, error) {
	query := `SELECT venue_id, venue_name, venue_status, venue_capacity FROM venue WHERE venue_name = $1`
	var v models.Venue
	err := r.getExecutor(exec).QueryRowContext(ctx, query, name).Scan(&v.ID, &v.Name, &v.Status, &v.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT venue_id, venue_name, venue_status, venue_capacity FROM venue ORDER BY venue_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Status, &v.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
