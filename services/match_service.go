package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Dosada05/soccer-tournament/brackets"
	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

type MatchService interface {
	ListMatches(ctx context.Context, tournamentID *int) ([]models.MatchRow, error)
	ListMatchResults(ctx context.Context, tournamentID *int) ([]models.MatchRow, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.MatchPlayed, error)
	RecordMatchResult(ctx context.Context, matchNo int, input RecordResultInput) (*models.MatchPlayed, error)
	GenerateGroupFixtures(ctx context.Context, tournamentID int, input GenerateFixturesInput) ([]models.MatchPlayed, error)
}

type CreateMatchInput struct {
	Date           string `json:"date"`
	TournamentName string `json:"tournament"`
	HomeTeamName   string `json:"home"`
	AwayTeamName   string `json:"away"`
	VenueName      string `json:"venue"`
	Stage          string `json:"stage,omitempty"`
}

type RecordResultInput struct {
	HomeGoals       int    `json:"home_goals"`
	AwayGoals       int    `json:"away_goals"`
	DecidedBy       string `json:"decided_by,omitempty"`
	Audience        int    `json:"audience"`
	PlayerOfMatchID *int   `json:"player_of_match,omitempty"`
}

type GenerateFixturesInput struct {
	FirstDate string `json:"first_date"`
	VenueName string `json:"venue"`
	// DaysBetweenRounds defaults to 7.
	DaysBetweenRounds int  `json:"days_between_rounds,omitempty"`
	DoubleRoundRobin  bool `json:"double_round_robin,omitempty"`
}

type matchService struct {
	matchRepo          repositories.MatchRepository
	tournamentRepo     repositories.TournamentRepository
	teamRepo           repositories.TeamRepository
	venueRepo          repositories.VenueRepository
	tournamentTeamRepo repositories.TournamentTeamRepository
	generator          brackets.BracketGenerator
	tx                 repositories.Transactor
	logger             *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	tournamentTeamRepo repositories.TournamentTeamRepository,
	generator brackets.BracketGenerator,
	tx repositories.Transactor,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:          matchRepo,
		tournamentRepo:     tournamentRepo,
		teamRepo:           teamRepo,
		venueRepo:          venueRepo,
		tournamentTeamRepo: tournamentTeamRepo,
		generator:          generator,
		tx:                 tx,
		logger:             logger,
	}
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID *int) ([]models.MatchRow, error) {
	rows, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: tournamentID})
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return rows, nil
}

func (s *matchService) ListMatchResults(ctx context.Context, tournamentID *int) ([]models.MatchRow, error) {
	rows, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: tournamentID, CompletedOnly: true})
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return rows, nil
}

func (s *matchService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return venues, nil
}

// CreateMatch schedules a match between two teams referenced by name. The
// match starts as "TBD" with a 0-0 score.
func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.MatchPlayed, error) {
	stage := strings.ToUpper(strings.TrimSpace(input.Stage))
	if stage == "" {
		stage = models.StageGroup
	}
	if stage != models.StageGroup && stage != models.StageFinal {
		return nil, ErrInvalidStage
	}

	tournament, err := s.tournamentRepo.GetByName(ctx, nil, strings.TrimSpace(input.TournamentName))
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrTournamentNotFound, ErrTournamentNotFound)
	}
	home, err := s.teamRepo.GetByName(ctx, nil, strings.TrimSpace(input.HomeTeamName))
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrTeamNotFound, ErrHomeTeamNotFound)
	}
	away, err := s.teamRepo.GetByName(ctx, nil, strings.TrimSpace(input.AwayTeamName))
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrTeamNotFound, ErrAwayTeamNotFound)
	}
	if home.ID == away.ID {
		return nil, ErrSameTeams
	}
	venue, err := s.resolveVenue(ctx, input.VenueName)
	if err != nil {
		return nil, err
	}

	playDate, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	if playDate.Before(tournament.StartDate) || playDate.After(tournament.EndDate) {
		return nil, fmt.Errorf("%w: %s not in %s..%s", ErrMatchDateOutOfRange,
			input.Date, tournament.StartDate.Format(DateLayout), tournament.EndDate.Format(DateLayout))
	}

	match := newScheduledMatch(tournament.ID, stage, playDate, home.ID, away.ID, venue.ID)
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "Match created",
		slog.Int("match_no", match.MatchNo),
		slog.Int("tournament_id", tournament.ID),
		slog.String("home", home.Name),
		slog.String("away", away.Name),
	)
	return match, nil
}

func newScheduledMatch(tournamentID int, stage string, date time.Time, homeID, awayID, venueID int) *models.MatchPlayed {
	return &models.MatchPlayed{
		TournamentID: tournamentID,
		PlayStage:    stage,
		PlayDate:     date,
		TeamID1:      homeID,
		TeamID2:      awayID,
		Results:      models.ResultPending,
		DecidedBy:    models.DecidedNormal,
		GoalScore:    models.InitialGoalScore,
		VenueID:      venueID,
	}
}

func (s *matchService) resolveVenue(ctx context.Context, name string) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByName(ctx, nil, strings.TrimSpace(name))
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrVenueNotFound, ErrVenueNotFound)
	}
	if !venue.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrVenueInactive, venue.Name)
	}
	return venue, nil
}

// RecordMatchResult stores the final score and recomputes the tournament's
// standings in the same transaction.
func (s *matchService) RecordMatchResult(ctx context.Context, matchNo int, input RecordResultInput) (*models.MatchPlayed, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, ErrInvalidScore
	}
	if input.Audience < 0 {
		return nil, ErrInvalidAudience
	}
	decidedBy := strings.ToUpper(strings.TrimSpace(input.DecidedBy))
	if decidedBy == "" {
		decidedBy = models.DecidedNormal
	}
	if decidedBy != models.DecidedNormal && decidedBy != models.DecidedPenalty {
		return nil, ErrInvalidDecidedBy
	}

	var match *models.MatchPlayed
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		match, err = s.matchRepo.GetByID(ctx, exec, matchNo)
		if err != nil {
			return err
		}
		match.GoalScore = fmt.Sprintf("%d-%d", input.HomeGoals, input.AwayGoals)
		match.Results = models.ResultWin
		if input.HomeGoals == input.AwayGoals && decidedBy == models.DecidedNormal {
			match.Results = models.ResultDraw
		}
		match.DecidedBy = decidedBy
		match.Audience = input.Audience
		match.PlayerOfMatchID = input.PlayerOfMatchID

		if err := s.matchRepo.UpdateResult(ctx, exec, match); err != nil {
			return err
		}
		return recomputeStandings(ctx, exec, s.tournamentTeamRepo, s.matchRepo, match.TournamentID)
	})
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrMatchNotFound, ErrMatchNotFound)
	}

	s.logger.InfoContext(ctx, "Match result recorded",
		slog.Int("match_no", match.MatchNo),
		slog.String("score", match.GoalScore),
		slog.String("result", match.Results),
	)
	return match, nil
}

// GenerateGroupFixtures creates a round-robin schedule for every group of the
// tournament. Round N of every group is played on firstDate + (N-1) * days.
func (s *matchService) GenerateGroupFixtures(ctx context.Context, tournamentID int, input GenerateFixturesInput) ([]models.MatchPlayed, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrTournamentNotFound, ErrTournamentNotFound)
	}
	firstDate, err := parseDate("first_date", input.FirstDate)
	if err != nil {
		return nil, err
	}
	if firstDate.Before(tournament.StartDate) || firstDate.After(tournament.EndDate) {
		return nil, fmt.Errorf("%w: %s", ErrMatchDateOutOfRange, input.FirstDate)
	}
	venue, err := s.resolveVenue(ctx, input.VenueName)
	if err != nil {
		return nil, err
	}
	days := input.DaysBetweenRounds
	if days <= 0 {
		days = 7
	}
	legs := 1
	if input.DoubleRoundRobin {
		legs = 2
	}

	entries, err := s.tournamentTeamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	groups := make(map[string][]int)
	for _, e := range entries {
		groups[e.Group] = append(groups[e.Group], e.TeamID)
	}
	groupNames := make([]string, 0, len(groups))
	for g, teams := range groups {
		if len(teams) < 2 {
			return nil, fmt.Errorf("%w: group %s has %d team(s)", ErrNotEnoughTeams, g, len(teams))
		}
		groupNames = append(groupNames, g)
	}
	if len(groupNames) == 0 {
		return nil, fmt.Errorf("%w: tournament has no registered teams", ErrNotEnoughTeams)
	}
	sort.Strings(groupNames)

	planned := make([]*models.MatchPlayed, 0)
	for _, g := range groupNames {
		pairings, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
			TournamentID: tournamentID,
			Group:        g,
			TeamIDs:      groups[g],
			Legs:         legs,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		for _, p := range pairings {
			date := firstDate.AddDate(0, 0, (p.Round-1)*days)
			if date.After(tournament.EndDate) {
				return nil, fmt.Errorf("%w: round %d falls on %s", ErrMatchDateOutOfRange, p.Round, date.Format(DateLayout))
			}
			planned = append(planned, newScheduledMatch(tournamentID, models.StageGroup, date, p.HomeTeamID, p.AwayTeamID, venue.ID))
		}
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, m := range planned {
			if err := s.matchRepo.Create(ctx, exec, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	created := make([]models.MatchPlayed, 0, len(planned))
	for _, m := range planned {
		created = append(created, *m)
	}
	s.logger.InfoContext(ctx, "Group fixtures generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("groups", len(groupNames)),
		slog.Int("matches", len(created)),
	)
	return created, nil
}
