// Package views turns repository rows into the records the front-end shows.
// Every function here is pure: same input, same output, no I/O.
package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
)

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"

	TournamentPlanning  = "Planning"
	TournamentActive    = "Active"
	TournamentCompleted = "Completed"

	TeamComplete   = "Complete"
	TeamIncomplete = "Incomplete"

	NoTournament = "No Tournament"
	NoTeam       = "No Team"

	RoleCaptain = "Captain"
	RolePlayer  = "Player"
)

// FormatLongDate formats the UTC calendar date as "November 5, 2025".
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("January 2, 2006")
}

func MatchStatus(results string) string {
	if results == models.ResultPending {
		return StatusScheduled
	}
	return StatusCompleted
}

// TournamentStatus compares calendar dates only; both boundary days count as
// active.
func TournamentStatus(start, end, now time.Time) string {
	today := truncateDay(now)
	switch {
	case today.Before(truncateDay(start)):
		return TournamentPlanning
	case today.After(truncateDay(end)):
		return TournamentCompleted
	default:
		return TournamentActive
	}
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseCount reads a count; anything missing or non-numeric is 0.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Average is goals per match with one decimal. Fewer than one match counts
// as one.
func Average(goals, matches int) string {
	if matches < 1 {
		matches = 1
	}
	return fmt.Sprintf("%.1f", float64(goals)/float64(matches))
}

type Tournament struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func Tournaments(rows []models.Tournament, now time.Time) []Tournament {
	out := make([]Tournament, 0, len(rows))
	for _, t := range rows {
		out = append(out, Tournament{
			ID:        t.ID,
			Name:      t.Name,
			StartDate: FormatLongDate(t.StartDate),
			EndDate:   FormatLongDate(t.EndDate),
			Status:    TournamentStatus(t.StartDate, t.EndDate, now),
		})
	}
	return out
}

type Team struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TournamentID *int   `json:"tournament_id,omitempty"`
	Tournament   string `json:"tournament"`
	Captain      string `json:"captain,omitempty"`
	Players      int    `json:"players"`
	SquadSize    int    `json:"squad_size"`
	Status       string `json:"status"`
}

func TeamStatus(players, squadSize int) string {
	if squadSize > 0 {
		if players >= squadSize {
			return TeamComplete
		}
		return TeamIncomplete
	}
	if players > 0 {
		return TeamComplete
	}
	return TeamIncomplete
}

func Teams(rows []models.TeamListRow) []Team {
	out := make([]Team, 0, len(rows))
	for _, r := range rows {
		team := Team{
			ID:           r.TeamID,
			Name:         r.TeamName,
			TournamentID: r.TournamentID,
			Tournament:   NoTournament,
			Players:      r.PlayerCount,
		}
		if r.TournamentName != nil {
			team.Tournament = *r.TournamentName
		}
		if r.CaptainName != nil {
			team.Captain = *r.CaptainName
		}
		if r.SquadSize != nil {
			team.SquadSize = *r.SquadSize
		}
		team.Status = TeamStatus(team.Players, team.SquadSize)
		out = append(out, team)
	}
	return out
}

type Match struct {
	ID           int    `json:"id"`
	Date         string `json:"date"`
	TournamentID int    `json:"tournament_id"`
	Tournament   string `json:"tournament"`
	Stage        string `json:"stage"`
	Home         string `json:"home"`
	Away         string `json:"away"`
	Score        string `json:"score,omitempty"`
	Venue        string `json:"venue"`
	Status       string `json:"status"`
}

// Matches hides the placeholder score of scheduled matches.
func Matches(rows []models.MatchRow) []Match {
	out := make([]Match, 0, len(rows))
	for _, r := range rows {
		m := Match{
			ID:           r.MatchNo,
			Date:         FormatLongDate(r.PlayDate),
			TournamentID: r.TournamentID,
			Tournament:   r.TournamentName,
			Stage:        r.PlayStage,
			Home:         r.HomeTeam,
			Away:         r.AwayTeam,
			Venue:        r.VenueName,
			Status:       MatchStatus(r.Results),
		}
		if m.Status == StatusCompleted {
			m.Score = r.GoalScore
		}
		out = append(out, m)
	}
	return out
}

type MatchResult struct {
	ID         int    `json:"id"`
	Date       string `json:"date"`
	Tournament string `json:"tournament"`
	Home       string `json:"home"`
	Score      string `json:"score"`
	Away       string `json:"away"`
	Venue      string `json:"venue"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
}

// MatchResults splits goal_score "H-A" into per-side counts as well.
func MatchResults(rows []models.MatchRow) []MatchResult {
	out := make([]MatchResult, 0, len(rows))
	for _, r := range rows {
		home, away, _ := strings.Cut(r.GoalScore, "-")
		out = append(out, MatchResult{
			ID:         r.MatchNo,
			Date:       FormatLongDate(r.PlayDate),
			Tournament: r.TournamentName,
			Home:       r.HomeTeam,
			Score:      r.GoalScore,
			Away:       r.AwayTeam,
			Venue:      r.VenueName,
			HomeGoals:  ParseCount(home),
			AwayGoals:  ParseCount(away),
		})
	}
	return out
}

type TopScorer struct {
	Rank       int    `json:"rank"`
	PlayerID   int    `json:"player_id"`
	Name       string `json:"name"`
	Team       string `json:"team"`
	Tournament string `json:"tournament"`
	Goals      int    `json:"goals"`
	Matches    int    `json:"matches"`
	Avg        string `json:"avg"`
}

// TopScorers keeps the row order and numbers it from 1.
func TopScorers(rows []models.TopScorerRow) []TopScorer {
	out := make([]TopScorer, 0, len(rows))
	for i, r := range rows {
		out = append(out, TopScorer{
			Rank:       i + 1,
			PlayerID:   r.PlayerID,
			Name:       r.PlayerName,
			Team:       r.TeamName,
			Tournament: r.Tournaments,
			Goals:      r.Goals,
			Matches:    r.Matches,
			Avg:        Average(r.Goals, r.Matches),
		})
	}
	return out
}

type RedCard struct {
	PlayerID   int    `json:"player_id"`
	Name       string `json:"name"`
	Team       string `json:"team"`
	Tournament string `json:"tournament"`
	MatchNo    int    `json:"match_no"`
	Match      string `json:"match"`
	Date       string `json:"date"`
	Minute     int    `json:"minute"`
	Half       int    `json:"half"`
}

func RedCards(rows []models.RedCardRow) []RedCard {
	out := make([]RedCard, 0, len(rows))
	for _, r := range rows {
		out = append(out, RedCard{
			PlayerID:   r.PlayerID,
			Name:       r.PlayerName,
			Team:       r.TeamName,
			Tournament: r.TournamentName,
			MatchNo:    r.MatchNo,
			Match:      r.HomeTeam + " vs " + r.AwayTeam,
			Date:       FormatLongDate(r.PlayDate),
			Minute:     r.BookingTime,
			Half:       r.PlayHalf,
		})
	}
	return out
}

// TeamMember is either a player (Position and Number set) or support staff.
type TeamMember struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TeamID   int    `json:"team_id,omitempty"`
	Team     string `json:"team"`
	Role     string `json:"role"`
	Position string `json:"position,omitempty"`
	Number   string `json:"number,omitempty"`
}

func TeamMembers(players []models.RosterPlayerRow, staff []models.RosterStaffRow) []TeamMember {
	out := make([]TeamMember, 0, len(players)+len(staff))
	for _, p := range players {
		m := TeamMember{
			ID:       p.PlayerID,
			Name:     p.Name,
			Team:     NoTeam,
			Role:     RolePlayer,
			Position: p.Position,
			Number:   strconv.Itoa(p.JerseyNo),
		}
		if p.TeamName != nil {
			m.Team = *p.TeamName
		}
		if p.TeamID != nil {
			m.TeamID = *p.TeamID
		}
		if p.IsCaptain {
			m.Role = RoleCaptain
		}
		out = append(out, m)
	}
	for _, s := range staff {
		out = append(out, TeamMember{
			ID:     s.SupportID,
			Name:   s.Name,
			TeamID: s.TeamID,
			Team:   s.TeamName,
			Role:   s.Role,
		})
	}
	return out
}

type Standing struct {
	TournamentID int    `json:"tournament_id"`
	Tournament   string `json:"tournament"`
	Group        string `json:"group"`
	Position     int    `json:"position"`
	TeamID       int    `json:"team_id"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Draw         int    `json:"draw"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

func Standings(rows []models.StandingRow) []Standing {
	out := make([]Standing, 0, len(rows))
	for _, r := range rows {
		out = append(out, Standing{
			TournamentID: r.TournamentID,
			Tournament:   r.TournamentName,
			Group:        r.Group,
			Position:     r.GroupPosition,
			TeamID:       r.TeamID,
			Team:         r.TeamName,
			Played:       r.MatchesPlayed,
			Won:          r.Won,
			Draw:         r.Draw,
			Lost:         r.Lost,
			GoalsFor:     r.GoalsFor,
			GoalsAgainst: r.GoalsAgainst,
			GoalDiff:     r.GoalDiff,
			Points:       r.Points,
		})
	}
	return out
}

type Player struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	TeamID       int    `json:"team_id"`
	Team         string `json:"team"`
	TournamentID int    `json:"tournament_id"`
	Tournament   string `json:"tournament"`
	Position     string `json:"position"`
	Status       string `json:"status"`
}

func Players(rows []models.PlayerListRow) []Player {
	out := make([]Player, 0, len(rows))
	for _, r := range rows {
		out = append(out, Player{
			ID:           r.PlayerID,
			Name:         r.PlayerName,
			TeamID:       r.TeamID,
			Team:         r.TeamName,
			TournamentID: r.TournamentID,
			Tournament:   r.TournamentName,
			Position:     r.Position,
			Status:       string(r.Status),
		})
	}
	return out
}

type Venue struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

func Venues(rows []models.Venue) []Venue {
	out := make([]Venue, 0, len(rows))
	for _, v := range rows {
		out = append(out, Venue{ID: v.ID, Name: v.Name, Capacity: v.Capacity, Active: v.IsActive()})
	}
	return out
}
