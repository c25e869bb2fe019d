package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/lib/pq"
)

// StatusRepository answers the operational status page.
type StatusRepository interface {
	Now(ctx context.Context) (time.Time, error)
	Info(ctx context.Context) (models.DatabaseInfo, error)
	CountRows(ctx context.Context, table string) (int, error)
	ListTables(ctx context.Context) ([]string, error)
}

type postgresStatusRepository struct {
	db *sql.DB
}

func NewPostgresStatusRepository(db *sql.DB) StatusRepository {
	return &postgresStatusRepository{db: db}
}

func (r *postgresStatusRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func (r *postgresStatusRepository) Info(ctx context.Context) (models.DatabaseInfo, error) {
	var info models.DatabaseInfo
	err := r.db.QueryRowContext(ctx, `SELECT current_database(), current_user, version()`).
		Scan(&info.Name, &info.User, &info.Version)
	return info, err
}

// CountRows counts a table's rows. The table name is quoted as an identifier.
func (r *postgresStatusRepository) CountRows(ctx context.Context, table string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM ` + pq.QuoteIdentifier(table)
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return count, nil
}

func (r *postgresStatusRepository) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
