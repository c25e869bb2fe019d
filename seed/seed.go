// Package seed loads demo fixtures into an empty database.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-tournament/repositories"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Supports        []Support        `yaml:"supports"`
	Positions       []Position       `yaml:"positions"`
	Venues          []Venue          `yaml:"venues"`
	People          []Person         `yaml:"people"`
	Tournaments     []Tournament     `yaml:"tournaments"`
	Players         []Player         `yaml:"players"`
	Teams           []Team           `yaml:"teams"`
	TournamentTeams []TournamentTeam `yaml:"tournament_teams"`
	TeamPlayers     []TeamPlayer     `yaml:"team_players"`
	TeamSupport     []TeamSupport    `yaml:"team_support"`
	Matches         []Match          `yaml:"matches"`
	Goals           []Goal           `yaml:"goals"`
	Bookings        []Booking        `yaml:"bookings"`
}

type Support struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type Position struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

type Venue struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Status   string `yaml:"status"`
	Capacity int    `yaml:"capacity"`
}

type Person struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	DateOfBirth time.Time `yaml:"date_of_birth"`
	Email       string    `yaml:"email"`
}

type Tournament struct {
	ID        int       `yaml:"id"`
	Name      string    `yaml:"name"`
	StartDate time.Time `yaml:"start_date"`
	EndDate   time.Time `yaml:"end_date"`
}

type Player struct {
	ID       int    `yaml:"id"`
	JerseyNo int    `yaml:"jersey_no"`
	Position string `yaml:"position"`
}

type Team struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	CaptainID *int   `yaml:"captain_id"`
}

type TournamentTeam struct {
	TeamID        int    `yaml:"team_id"`
	TournamentID  int    `yaml:"tournament_id"`
	Group         string `yaml:"group"`
	MatchPlayed   int    `yaml:"match_played"`
	Won           int    `yaml:"won"`
	Draw          int    `yaml:"draw"`
	Lost          int    `yaml:"lost"`
	GoalFor       int    `yaml:"goal_for"`
	GoalAgainst   int    `yaml:"goal_against"`
	Points        int    `yaml:"points"`
	GroupPosition int    `yaml:"group_position"`
	SquadSize     int    `yaml:"squad_size"`
}

type TeamPlayer struct {
	PlayerID     int    `yaml:"player_id"`
	TeamID       int    `yaml:"team_id"`
	TournamentID int    `yaml:"tournament_id"`
	Status       string `yaml:"status"`
}

type TeamSupport struct {
	SupportID    int    `yaml:"support_id"`
	TeamID       int    `yaml:"team_id"`
	TournamentID int    `yaml:"tournament_id"`
	SupportType  string `yaml:"support_type"`
}

type Match struct {
	MatchNo       int       `yaml:"match_no"`
	TournamentID  int       `yaml:"tournament_id"`
	Stage         string    `yaml:"stage"`
	Date          time.Time `yaml:"date"`
	HomeTeamID    int       `yaml:"home"`
	AwayTeamID    int       `yaml:"away"`
	Results       string    `yaml:"results"`
	DecidedBy     string    `yaml:"decided_by"`
	GoalScore     string    `yaml:"goal_score"`
	VenueID       int       `yaml:"venue_id"`
	Audience      int       `yaml:"audience"`
	PlayerOfMatch *int      `yaml:"player_of_match"`
	Stop1Sec      int       `yaml:"stop1_sec"`
	Stop2Sec      int       `yaml:"stop2_sec"`
}

type Goal struct {
	MatchNo  int    `yaml:"match_no"`
	PlayerID int    `yaml:"player_id"`
	TeamID   int    `yaml:"team_id"`
	Time     int    `yaml:"time"`
	Type     string `yaml:"type"`
	Stage    string `yaml:"stage"`
	Schedule string `yaml:"schedule"`
	Half     int    `yaml:"half"`
}

type Booking struct {
	MatchNo  int    `yaml:"match_no"`
	TeamID   int    `yaml:"team_id"`
	PlayerID int    `yaml:"player_id"`
	Time     int    `yaml:"time"`
	SentOff  string `yaml:"sent_off"`
	Schedule string `yaml:"schedule"`
	Half     int    `yaml:"half"`
}

// Default returns the embedded demo fixtures.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

func Load(r io.Reader) (*Fixtures, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

type tableRows struct {
	table string
	rows  []map[string]interface{}
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Rows flattens the fixtures into insert order (parents first).
func (f *Fixtures) Rows() []tableRows {
	out := []tableRows{}
	add := func(table string, rows []map[string]interface{}) {
		if len(rows) > 0 {
			out = append(out, tableRows{table: table, rows: rows})
		}
	}

	var rows []map[string]interface{}
	for _, s := range f.Supports {
		rows = append(rows, map[string]interface{}{"support_type": s.Type, "support_desc": s.Description})
	}
	add("support", rows)

	rows = nil
	for _, p := range f.Positions {
		rows = append(rows, map[string]interface{}{"position_id": p.ID, "position_desc": p.Description})
	}
	add("playing_position", rows)

	rows = nil
	for _, v := range f.Venues {
		rows = append(rows, map[string]interface{}{
			"venue_id": v.ID, "venue_name": v.Name, "venue_status": orDefault(v.Status, "Y"), "venue_capacity": v.Capacity,
		})
	}
	add("venue", rows)

	rows = nil
	for _, p := range f.People {
		row := map[string]interface{}{"kfupm_id": p.ID, "name": p.Name, "email": nullableString(p.Email)}
		if !p.DateOfBirth.IsZero() {
			row["date_of_birth"] = p.DateOfBirth
		}
		rows = append(rows, row)
	}
	add("person", rows)

	rows = nil
	for _, t := range f.Tournaments {
		rows = append(rows, map[string]interface{}{
			"tr_id": t.ID, "tr_name": t.Name, "start_date": t.StartDate, "end_date": t.EndDate,
		})
	}
	add("tournament", rows)

	rows = nil
	for _, p := range f.Players {
		rows = append(rows, map[string]interface{}{"player_id": p.ID, "jersey_no": p.JerseyNo, "position_to_play": p.Position})
	}
	add("player", rows)

	rows = nil
	for _, t := range f.Teams {
		row := map[string]interface{}{"team_id": t.ID, "team_name": t.Name}
		if t.CaptainID != nil {
			row["captain_id"] = *t.CaptainID
		}
		rows = append(rows, row)
	}
	add("team", rows)

	rows = nil
	for _, tt := range f.TournamentTeams {
		rows = append(rows, map[string]interface{}{
			"team_id": tt.TeamID, "tr_id": tt.TournamentID, "team_group": orDefault(tt.Group, "A"),
			"match_played": tt.MatchPlayed, "won": tt.Won, "draw": tt.Draw, "lost": tt.Lost,
			"goal_for": tt.GoalFor, "goal_against": tt.GoalAgainst, "goal_diff": tt.GoalFor - tt.GoalAgainst,
			"points": tt.Points, "group_position": tt.GroupPosition, "squad_size": tt.SquadSize,
		})
	}
	add("tournament_team", rows)

	rows = nil
	for _, tp := range f.TeamPlayers {
		rows = append(rows, map[string]interface{}{
			"player_id": tp.PlayerID, "team_id": tp.TeamID, "tr_id": tp.TournamentID, "status": orDefault(tp.Status, "pending"),
		})
	}
	add("team_player", rows)

	rows = nil
	for _, ts := range f.TeamSupport {
		rows = append(rows, map[string]interface{}{
			"support_id": ts.SupportID, "team_id": ts.TeamID, "tr_id": ts.TournamentID, "support_type": ts.SupportType,
		})
	}
	add("team_support", rows)

	rows = nil
	for _, m := range f.Matches {
		row := map[string]interface{}{
			"match_no": m.MatchNo, "tr_id": m.TournamentID, "play_stage": orDefault(m.Stage, "G"), "play_date": m.Date,
			"team_id1": m.HomeTeamID, "team_id2": m.AwayTeamID, "results": orDefault(m.Results, "TBD"),
			"decided_by": orDefault(m.DecidedBy, "N"), "goal_score": orDefault(m.GoalScore, "0-0"),
			"venue_id": m.VenueID, "audience": m.Audience, "stop1_sec": m.Stop1Sec, "stop2_sec": m.Stop2Sec,
		}
		if m.PlayerOfMatch != nil {
			row["player_of_match"] = *m.PlayerOfMatch
		}
		rows = append(rows, row)
	}
	add("match_played", rows)

	rows = nil
	for _, g := range f.Goals {
		rows = append(rows, map[string]interface{}{
			"match_no": g.MatchNo, "player_id": g.PlayerID, "team_id": g.TeamID, "goal_time": g.Time,
			"goal_type": orDefault(g.Type, "N"), "play_stage": orDefault(g.Stage, "G"),
			"goal_schedule": orDefault(g.Schedule, "NT"), "goal_half": g.Half,
		})
	}
	add("goal_details", rows)

	rows = nil
	for _, b := range f.Bookings {
		rows = append(rows, map[string]interface{}{
			"match_no": b.MatchNo, "team_id": b.TeamID, "player_id": b.PlayerID, "booking_time": b.Time,
			"sent_off": orDefault(b.SentOff, "N"), "play_schedule": orDefault(b.Schedule, "NT"), "play_half": b.Half,
		})
	}
	add("player_booked", rows)

	return out
}

// Apply replaces every table's contents with the fixtures in one transaction.
func Apply(ctx context.Context, tx repositories.Transactor, repo repositories.FixtureRepository, f *Fixtures, logger *slog.Logger) error {
	return tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := repo.Clear(ctx, exec); err != nil {
			return err
		}
		for _, tr := range f.Rows() {
			for _, row := range tr.rows {
				if err := repo.Insert(ctx, exec, tr.table, row); err != nil {
					return err
				}
			}
			logger.InfoContext(ctx, "Seeded table", slog.String("table", tr.table), slog.Int("rows", len(tr.rows)))
		}
		return repo.ResetIdentities(ctx, exec)
	})
}
