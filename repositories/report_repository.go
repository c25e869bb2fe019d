package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Dosada05/soccer-tournament/models"
)

// ReportRepository runs the aggregate statistics queries.
type ReportRepository interface {
	TopScorers(ctx context.Context, limit int, tournamentID *int) ([]models.TopScorerRow, error)
	RedCards(ctx context.Context, tournamentID *int) ([]models.RedCardRow, error)
}

type postgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

// TopScorers groups goals by player and team. limit <= 0 means no limit.
func (r *postgresReportRepository) TopScorers(ctx context.Context, limit int, tournamentID *int) ([]models.TopScorerRow, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT g.player_id, p.name, t.team_name,
		       STRING_AGG(DISTINCT tr.tr_name, ', ') AS tournaments,
		       COUNT(g.goal_id) AS goals,
		       COUNT(DISTINCT g.match_no) AS matches
		FROM goal_details g
		JOIN person p ON p.kfupm_id = g.player_id
		JOIN team t ON t.team_id = g.team_id
		JOIN match_played m ON m.match_no = g.match_no
		JOIN tournament tr ON tr.tr_id = m.tr_id
		WHERE 1=1`)

	query, args := appendFilter(qb.String(), nil, "m.tr_id", tournamentID)
	query += ` GROUP BY g.player_id, p.name, t.team_name ORDER BY goals DESC, p.name`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scorers: %w", err)
	}
	defer rows.Close()

	scorers := make([]models.TopScorerRow, 0)
	for rows.Next() {
		var s models.TopScorerRow
		if err := rows.Scan(&s.PlayerID, &s.PlayerName, &s.TeamName, &s.Tournaments, &s.Goals, &s.Matches); err != nil {
			return nil, fmt.Errorf("failed to scan top scorer: %w", err)
		}
		scorers = append(scorers, s)
	}
	return scorers, rows.Err()
}

func (r *postgresReportRepository) RedCards(ctx context.Context, tournamentID *int) ([]models.RedCardRow, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT b.player_id, p.name, t.team_name, b.match_no, m.play_date,
		       b.booking_time, b.play_half,
		       t1.team_name AS home_team, t2.team_name AS away_team, tr.tr_name
		FROM player_booked b
		JOIN person p ON p.kfupm_id = b.player_id
		JOIN team t ON t.team_id = b.team_id
		JOIN match_played m ON m.match_no = b.match_no
		JOIN team t1 ON t1.team_id = m.team_id1
		JOIN team t2 ON t2.team_id = m.team_id2
		JOIN tournament tr ON tr.tr_id = m.tr_id
		WHERE b.sent_off = 'Y'`)

	query, args := appendFilter(qb.String(), nil, "m.tr_id", tournamentID)
	query += ` ORDER BY m.play_date, b.booking_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query red cards: %w", err)
	}
	defer rows.Close()

	cards := make([]models.RedCardRow, 0)
	for rows.Next() {
		var c models.RedCardRow
		if err := rows.Scan(
			&c.PlayerID, &c.PlayerName, &c.TeamName, &c.MatchNo, &c.PlayDate,
			&c.BookingTime, &c.PlayHalf, &c.HomeTeam, &c.AwayTeam, &c.TournamentName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan red card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
