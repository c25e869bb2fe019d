package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

// DashboardService reports database connectivity and row counts.
type DashboardService interface {
	GetStatus(ctx context.Context) (*models.DatabaseStatus, error)
	ListTableCounts(ctx context.Context) ([]models.TableCount, error)
}

type dashboardService struct {
	statusRepo repositories.StatusRepository
	logger     *slog.Logger
}

func NewDashboardService(statusRepo repositories.StatusRepository, logger *slog.Logger) DashboardService {
	return &dashboardService{statusRepo: statusRepo, logger: logger}
}

// GetStatus pings the database and fetches the four headline counts in
// parallel. Any failure is reported as a connectivity error.
func (s *dashboardService) GetStatus(ctx context.Context) (*models.DatabaseStatus, error) {
	now, err := s.statusRepo.Now(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	status := &models.DatabaseStatus{Connected: true, Timestamp: now}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := s.statusRepo.Info(gctx)
		status.Info = info
		return err
	})
	counts := []struct {
		table string
		dst   *int
	}{
		{"tournament", &status.Stats.Tournaments},
		{"team", &status.Stats.Teams},
		{"player", &status.Stats.Players},
		{"match_played", &status.Stats.Matches},
	}
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := s.statusRepo.CountRows(gctx, c.table)
			*c.dst = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err)
	}
	return status, nil
}

// ListTableCounts counts every public table. A table that cannot be counted
// is reported with Error set instead of failing the whole list.
func (s *dashboardService) ListTableCounts(ctx context.Context) ([]models.TableCount, error) {
	tables, err := s.statusRepo.ListTables(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	result := make([]models.TableCount, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, name := range tables {
		i, name := i, name
		g.Go(func() error {
			n, err := s.statusRepo.CountRows(gctx, name)
			result[i] = models.TableCount{Name: name, RowCount: n}
			if err != nil {
				s.logger.WarnContext(ctx, "Failed to count table rows", slog.String("table", name), slog.Any("error", err))
				result[i].Error = true
			}
			return nil
		})
	}
	_ = g.Wait()
	return result, nil
}
