package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

// MaxInitialPlayerCount is the upper bound accepted by CreateTeam.
const MaxInitialPlayerCount = 50

type TeamService interface {
	ListTeams(ctx context.Context) ([]models.TeamListRow, error)
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	AssignCaptain(ctx context.Context, teamID, captainID int) error
	ListTeamRoster(ctx context.Context, teamID *int) (*TeamRoster, error)
}

type CreateTeamInput struct {
	Name               string `json:"name"`
	TournamentName     string `json:"tournament_name"`
	InitialPlayerCount int    `json:"initial_player_count"`
}

// TeamRoster holds the two halves of a team member report.
type TeamRoster struct {
	Players []models.RosterPlayerRow
	Staff   []models.RosterStaffRow
}

type teamService struct {
	teamRepo           repositories.TeamRepository
	tournamentRepo     repositories.TournamentRepository
	tournamentTeamRepo repositories.TournamentTeamRepository
	rosterRepo         repositories.RosterRepository
	tx                 repositories.Transactor
	logger             *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	tournamentTeamRepo repositories.TournamentTeamRepository,
	rosterRepo repositories.RosterRepository,
	tx repositories.Transactor,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:           teamRepo,
		tournamentRepo:     tournamentRepo,
		tournamentTeamRepo: tournamentTeamRepo,
		rosterRepo:         rosterRepo,
		tx:                 tx,
		logger:             logger,
	}
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.TeamListRow, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return teams, nil
}

// CreateTeam inserts the team and its zeroed standings row for the named
// tournament. The tournament is resolved before anything is written.
func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if input.InitialPlayerCount < 0 || input.InitialPlayerCount > MaxInitialPlayerCount {
		return nil, ErrInvalidPlayerCount
	}

	tournament, err := s.tournamentRepo.GetByName(ctx, nil, strings.TrimSpace(input.TournamentName))
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrTournamentNotFound, ErrTournamentNotFound)
	}

	team := &models.Team{Name: name}
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.teamRepo.Create(ctx, exec, team); err != nil {
			return err
		}
		entry := &models.TournamentTeam{
			TeamID:       team.ID,
			TournamentID: tournament.ID,
			Group:        models.DefaultGroup,
			SquadSize:    input.InitialPlayerCount,
		}
		return s.tournamentTeamRepo.Create(ctx, exec, entry)
	})
	if err != nil {
		return nil, handleRepositoryError(err, repositories.ErrTeamNameConflict, ErrTeamNameConflict)
	}

	s.logger.InfoContext(ctx, "Team created",
		slog.Int("team_id", team.ID),
		slog.String("name", team.Name),
		slog.Int("tournament_id", tournament.ID),
	)
	return team, nil
}

func (s *teamService) AssignCaptain(ctx context.Context, teamID, captainID int) error {
	if _, err := s.teamRepo.GetByID(ctx, nil, teamID); err != nil {
		return handleRepositoryError(err, repositories.ErrTeamNotFound, ErrTeamNotFound)
	}

	onTeam, err := s.teamRepo.IsPlayerOnTeam(ctx, nil, teamID, captainID)
	if err != nil {
		return handleRepositoryError(err)
	}
	if !onTeam {
		return ErrCaptainNotOnTeam
	}

	err = s.teamRepo.UpdateCaptain(ctx, nil, teamID, captainID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamInvalidRef) {
			return ErrCaptainNotOnTeam
		}
		return handleRepositoryError(err, repositories.ErrTeamNotFound, ErrTeamNotFound)
	}
	return nil
}

func (s *teamService) ListTeamRoster(ctx context.Context, teamID *int) (*TeamRoster, error) {
	players, err := s.rosterRepo.ListRosterPlayers(ctx, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	staff, err := s.rosterRepo.ListRosterStaff(ctx, teamID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return &TeamRoster{Players: players, Staff: staff}, nil
}
