package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

// PlayerService handles the admin review of roster registrations.
type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.PlayerListRow, error)
	ApprovePlayer(ctx context.Context, playerID, tournamentID int) error
	RejectPlayer(ctx context.Context, playerID, tournamentID int) error
}

type playerService struct {
	rosterRepo repositories.RosterRepository
	logger     *slog.Logger
}

func NewPlayerService(rosterRepo repositories.RosterRepository, logger *slog.Logger) PlayerService {
	return &playerService{rosterRepo: rosterRepo, logger: logger}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.PlayerListRow, error) {
	players, err := s.rosterRepo.ListPlayers(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return players, nil
}

func (s *playerService) ApprovePlayer(ctx context.Context, playerID, tournamentID int) error {
	return s.setStatus(ctx, playerID, tournamentID, models.RosterStatusApproved)
}

func (s *playerService) RejectPlayer(ctx context.Context, playerID, tournamentID int) error {
	return s.setStatus(ctx, playerID, tournamentID, models.RosterStatusRejected)
}

func (s *playerService) setStatus(ctx context.Context, playerID, tournamentID int, status models.RosterStatus) error {
	err := s.rosterRepo.UpdateStatus(ctx, nil, playerID, tournamentID, status)
	if err != nil {
		return handleRepositoryError(err, repositories.ErrRosterEntryNotFound, ErrRosterEntryNotFound)
	}
	s.logger.InfoContext(ctx, "Roster status changed",
		slog.Int("player_id", playerID),
		slog.Int("tournament_id", tournamentID),
		slog.String("status", string(status)),
	)
	return nil
}
