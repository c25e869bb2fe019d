package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	UpdateTournamentDates(ctx context.Context, id int, startDate, endDate string) error
	DeleteTournament(ctx context.Context, id int) error
}

type CreateTournamentInput struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type tournamentService struct {
	tournamentRepo     repositories.TournamentRepository
	tournamentTeamRepo repositories.TournamentTeamRepository
	rosterRepo         repositories.RosterRepository
	matchRepo          repositories.MatchRepository
	tx                 repositories.Transactor
	logger             *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	tournamentTeamRepo repositories.TournamentTeamRepository,
	rosterRepo repositories.RosterRepository,
	matchRepo repositories.MatchRepository,
	tx repositories.Transactor,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo:     tournamentRepo,
		tournamentTeamRepo: tournamentTeamRepo,
		rosterRepo:         rosterRepo,
		matchRepo:          matchRepo,
		tx:                 tx,
		logger:             logger,
	}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return tournaments, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	t := &models.Tournament{Name: name, StartDate: start, EndDate: end}
	if err := s.tournamentRepo.Create(ctx, nil, t); err != nil {
		return nil, handleRepositoryError(err,
			repositories.ErrTournamentNameConflict, ErrTournamentNameConflict,
			repositories.ErrTournamentInvalidDates, ErrTournamentInvalidDateRange,
		)
	}

	s.logger.InfoContext(ctx, "Tournament created", slog.Int("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) UpdateTournamentDates(ctx context.Context, id int, startDate, endDate string) error {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return err
	}
	err = s.tournamentRepo.UpdateDates(ctx, nil, id, start, end)
	return handleRepositoryError(err,
		repositories.ErrTournamentNotFound, ErrTournamentNotFound,
		repositories.ErrTournamentInvalidDates, ErrTournamentInvalidDateRange,
	)
}

// DeleteTournament removes the tournament with its matches, goals, bookings,
// rosters and standings in a single transaction.
func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.tournamentRepo.GetByID(ctx, exec, id); err != nil {
			return err
		}
		if err := s.matchRepo.DeleteByTournamentID(ctx, exec, id); err != nil {
			return err
		}
		if err := s.rosterRepo.DeleteSupportByTournamentID(ctx, exec, id); err != nil {
			return err
		}
		if err := s.rosterRepo.DeletePlayersByTournamentID(ctx, exec, id); err != nil {
			return err
		}
		if err := s.tournamentTeamRepo.DeleteByTournamentID(ctx, exec, id); err != nil {
			return err
		}
		return s.tournamentRepo.Delete(ctx, exec, id)
	})
	if err != nil {
		return handleRepositoryError(fmt.Errorf("delete tournament %d: %w", id, err),
			repositories.ErrTournamentNotFound, ErrTournamentNotFound,
			repositories.ErrTournamentInUse, ErrTournamentInUse,
		)
	}

	s.logger.InfoContext(ctx, "Tournament deleted", slog.Int("tournament_id", id))
	return nil
}
