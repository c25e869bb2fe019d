package services

import (
	"context"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

// DefaultTopScorersLimit is used when the caller gives no positive limit.
const DefaultTopScorersLimit = 10

type StatsService interface {
	TopScorers(ctx context.Context, limit int, tournamentID *int) ([]models.TopScorerRow, error)
	RedCards(ctx context.Context, tournamentID *int) ([]models.RedCardRow, error)
}

type statsService struct {
	reportRepo repositories.ReportRepository
}

func NewStatsService(reportRepo repositories.ReportRepository) StatsService {
	return &statsService{reportRepo: reportRepo}
}

func (s *statsService) TopScorers(ctx context.Context, limit int, tournamentID *int) ([]models.TopScorerRow, error) {
	if limit <= 0 {
		limit = DefaultTopScorersLimit
	}
	rows, err := s.reportRepo.TopScorers(ctx, limit, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return rows, nil
}

func (s *statsService) RedCards(ctx context.Context, tournamentID *int) ([]models.RedCardRow, error) {
	rows, err := s.reportRepo.RedCards(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return rows, nil
}
