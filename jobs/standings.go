// Package jobs runs the scheduled maintenance work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-tournament/store"
	"github.com/robfig/cron/v3"
)

// jobTimeout bounds one run so a stuck database does not pile up runs.
const jobTimeout = 2 * time.Minute

type Recomputer interface {
	RecomputeAll(ctx context.Context) error
}

type Refresher interface {
	Refresh(ctx context.Context, kinds ...store.Kind) error
}

// StandingsJob пересчитывает таблицы всех турниров и обновляет store.
type StandingsJob struct {
	standings Recomputer
	store     Refresher
	logger    *slog.Logger
}

func NewStandingsJob(standings Recomputer, st Refresher, logger *slog.Logger) *StandingsJob {
	return &StandingsJob{standings: standings, store: st, logger: logger}
}

// Run implements cron.Job.
func (j *StandingsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	j.run(ctx)
}

func (j *StandingsJob) run(ctx context.Context) {
	start := time.Now()
	// Часть турниров могла пересчитаться до ошибки, store обновляем в любом случае
	recomputeErr := j.standings.RecomputeAll(ctx)
	if recomputeErr != nil {
		j.logger.ErrorContext(ctx, "Scheduled standings recompute failed", slog.Any("error", recomputeErr))
	}
	if err := j.store.Refresh(ctx, store.KindStandings); err != nil {
		j.logger.WarnContext(ctx, "Standings refresh after recompute failed", slog.Any("error", err))
		return
	}
	if recomputeErr == nil {
		j.logger.InfoContext(ctx, "Standings recomputed", slog.Duration("took", time.Since(start)))
	}
}

// NewStandingsCron schedules job with a standard five-field cron spec. Runs do
// not overlap.
func NewStandingsCron(spec string, job *StandingsJob, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("invalid standings cron spec %q: %w", spec, err)
	}
	logger.Info("Standings cron scheduled", slog.String("spec", spec))
	return c, nil
}
