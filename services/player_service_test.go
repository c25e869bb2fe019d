package services

import (
	"context"
	"testing"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveAndRejectPlayer(t *testing.T) {
	roster := &fakeRosterRepo{statuses: map[[2]int]models.RosterStatus{
		{1009, 1}: models.RosterStatusPending,
	}}
	svc := NewPlayerService(roster, testLogger())

	require.NoError(t, svc.ApprovePlayer(context.Background(), 1009, 1))
	assert.Equal(t, models.RosterStatusApproved, roster.statuses[[2]int{1009, 1}])

	require.NoError(t, svc.RejectPlayer(context.Background(), 1009, 1))
	assert.Equal(t, models.RosterStatusRejected, roster.statuses[[2]int{1009, 1}])

	err := svc.ApprovePlayer(context.Background(), 1009, 2)
	assert.ErrorIs(t, err, ErrRosterEntryNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}
