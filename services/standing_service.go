package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

type StandingService interface {
	ListStandings(ctx context.Context, tournamentID *int) ([]models.StandingRow, error)
	RecomputeTournament(ctx context.Context, tournamentID int) error
	RecomputeAll(ctx context.Context) error
}

type standingService struct {
	tournamentTeamRepo repositories.TournamentTeamRepository
	matchRepo          repositories.MatchRepository
	tx                 repositories.Transactor
	logger             *slog.Logger
}

func NewStandingService(
	tournamentTeamRepo repositories.TournamentTeamRepository,
	matchRepo repositories.MatchRepository,
	tx repositories.Transactor,
	logger *slog.Logger,
) StandingService {
	return &standingService{
		tournamentTeamRepo: tournamentTeamRepo,
		matchRepo:          matchRepo,
		tx:                 tx,
		logger:             logger,
	}
}

func (s *standingService) ListStandings(ctx context.Context, tournamentID *int) ([]models.StandingRow, error) {
	rows, err := s.tournamentTeamRepo.ListStandings(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return rows, nil
}

func (s *standingService) RecomputeTournament(ctx context.Context, tournamentID int) error {
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return recomputeStandings(ctx, exec, s.tournamentTeamRepo, s.matchRepo, tournamentID)
	})
	return handleRepositoryError(err)
}

// RecomputeAll rebuilds every tournament's table. A failing tournament does
// not stop the others; all failures are returned joined.
func (s *standingService) RecomputeAll(ctx context.Context) error {
	ids, err := s.tournamentTeamRepo.ListTournamentIDs(ctx)
	if err != nil {
		return handleRepositoryError(err)
	}

	var errs []error
	for _, id := range ids {
		if err := s.RecomputeTournament(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "Failed to recompute standings",
				slog.Int("tournament_id", id), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("tournament %d: %w", id, err))
		}
	}
	s.logger.DebugContext(ctx, "Standings recomputed", slog.Int("tournaments", len(ids)), slog.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// recomputeStandings loads a tournament's teams and matches through exec,
// recomputes the table and writes it back.
func recomputeStandings(
	ctx context.Context,
	exec repositories.SQLExecutor,
	ttRepo repositories.TournamentTeamRepository,
	matchRepo repositories.MatchRepository,
	tournamentID int,
) error {
	entries, err := ttRepo.ListByTournament(ctx, exec, tournamentID)
	if err != nil {
		return err
	}
	matches, err := matchRepo.ListByTournament(ctx, exec, tournamentID)
	if err != nil {
		return err
	}
	for _, e := range ComputeStandings(entries, matches) {
		e := e
		if err := ttRepo.UpdateStats(ctx, exec, &e); err != nil {
			return err
		}
	}
	return nil
}

// ComputeStandings rebuilds statistics from completed group-stage matches.
// A win is worth 3 points, a draw 1, a loss 0. Within each group teams are
// ranked by points, goal difference, goals scored and then name.
func ComputeStandings(entries []models.TournamentTeam, matches []models.MatchPlayed) []models.TournamentTeam {
	table := make([]models.TournamentTeam, len(entries))
	index := make(map[int]int, len(entries))
	for i, e := range entries {
		e.ResetStats()
		table[i] = e
		index[e.TeamID] = i
	}

	for _, m := range matches {
		if !m.IsCompleted() || m.PlayStage != models.StageGroup {
			continue
		}
		home, away, ok := ParseGoalScore(m.GoalScore)
		if !ok {
			continue
		}
		hi, okH := index[m.TeamID1]
		ai, okA := index[m.TeamID2]
		if !okH || !okA {
			continue
		}
		applyResult(&table[hi], home, away)
		applyResult(&table[ai], away, home)
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamName < b.TeamName
	})

	position := 0
	for i := range table {
		if i == 0 || table[i].Group != table[i-1].Group {
			position = 0
		}
		position++
		table[i].GroupPosition = position
	}
	return table
}

func applyResult(e *models.TournamentTeam, scored, conceded int) {
	e.MatchesPlayed++
	e.GoalsFor += scored
	e.GoalsAgainst += conceded
	e.GoalDiff = e.GoalsFor - e.GoalsAgainst
	switch {
	case scored > conceded:
		e.Won++
		e.Points += models.PointsWin
	case scored == conceded:
		e.Draw++
		e.Points += models.PointsDraw
	default:
		e.Lost++
		e.Points += models.PointsLoss
	}
}

// ParseGoalScore splits "H-A" into home and away goals.
func ParseGoalScore(score string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(score), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || home < 0 {
		return 0, 0, false
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}
