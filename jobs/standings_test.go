package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Dosada05/soccer-tournament/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecomputer struct {
	calls int
	err   error
}

func (f *fakeRecomputer) RecomputeAll(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeRefresher struct {
	kinds []store.Kind
}

func (f *fakeRefresher) Refresh(ctx context.Context, kinds ...store.Kind) error {
	f.kinds = append(f.kinds, kinds...)
	return nil
}

func TestStandingsJob_RecomputesThenRefreshes(t *testing.T) {
	rec, ref := &fakeRecomputer{}, &fakeRefresher{}
	var buf bytes.Buffer
	job := NewStandingsJob(rec, ref, slog.New(slog.NewTextHandler(&buf, nil)))

	job.Run()

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, []store.Kind{store.KindStandings}, ref.kinds)
	assert.Contains(t, buf.String(), "Standings recomputed")
}

func TestStandingsJob_RefreshesEvenWhenRecomputeFails(t *testing.T) {
	rec, ref := &fakeRecomputer{err: errors.New("db down")}, &fakeRefresher{}
	var buf bytes.Buffer
	job := NewStandingsJob(rec, ref, slog.New(slog.NewTextHandler(&buf, nil)))

	job.Run()

	assert.Equal(t, []store.Kind{store.KindStandings}, ref.kinds)
	assert.Contains(t, buf.String(), "Scheduled standings recompute failed")
	assert.Contains(t, buf.String(), "db down")
	assert.NotContains(t, buf.String(), "Standings recomputed")
}

func TestNewStandingsCron(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	job := NewStandingsJob(&fakeRecomputer{}, &fakeRefresher{}, logger)

	c, err := NewStandingsCron("*/15 * * * *", job, logger)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = NewStandingsCron("every now and then", job, logger)
	assert.Error(t, err)
}
