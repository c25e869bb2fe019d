package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// seedTables lists every table in dependency order (parents first).
var seedTables = []string{
	"support", "playing_position", "venue", "person", "tournament", "player", "team",
	"tournament_team", "team_player", "team_support", "match_played", "goal_details", "player_booked",
}

// identityColumns are the generated columns whose sequences must be advanced
// after rows were inserted with explicit ids.
var identityColumns = map[string]string{
	"venue":        "venue_id",
	"tournament":   "tr_id",
	"team":         "team_id",
	"match_played": "match_no",
	"goal_details": "goal_id",
}

// FixtureRepository writes raw rows for the seeder.
type FixtureRepository interface {
	Clear(ctx context.Context, exec SQLExecutor) error
	Insert(ctx context.Context, exec SQLExecutor, table string, row map[string]interface{}) error
	ResetIdentities(ctx context.Context, exec SQLExecutor) error
}

type postgresFixtureRepository struct {
	db *sql.DB
}

func NewPostgresFixtureRepository(db *sql.DB) FixtureRepository {
	return &postgresFixtureRepository{db: db}
}

func (r *postgresFixtureRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresFixtureRepository) Clear(ctx context.Context, exec SQLExecutor) error {
	quoted := make([]string, 0, len(seedTables))
	for _, t := range seedTables {
		quoted = append(quoted, pq.QuoteIdentifier(t))
	}
	query := `TRUNCATE ` + strings.Join(quoted, ", ") + ` RESTART IDENTITY`
	if _, err := r.getExecutor(exec).ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear tables: %w", err)
	}
	return nil
}

// Insert adds one row. Column order is sorted so the statement is stable.
func (r *postgresFixtureRepository) Insert(ctx context.Context, exec SQLExecutor, table string, row map[string]interface{}) error {
	if len(row) == 0 {
		return fmt.Errorf("empty row for table %s", table)
	}
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	quotedCols := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		quotedCols[i] = pq.QuoteIdentifier(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[col]
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		pq.QuoteIdentifier(table), strings.Join(quotedCols, ", "), strings.Join(placeholders, ", "))
	if _, err := r.getExecutor(exec).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, classifyPQError(err))
	}
	return nil
}

func (r *postgresFixtureRepository) ResetIdentities(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	for table, column := range identityColumns {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s`,
			table, column, pq.QuoteIdentifier(column), pq.QuoteIdentifier(table))
		if _, err := executor.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset identity of %s: %w", table, err)
		}
	}
	return nil
}
