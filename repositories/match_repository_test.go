package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_DeleteByTournamentIDOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresMatchRepository(db)

	mock.ExpectExec("DELETE FROM goal_details WHERE match_no IN").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 15))
	mock.ExpectExec("DELETE FROM player_booked WHERE match_no IN").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM match_played WHERE tr_id").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.DeleteByTournamentID(context.Background(), nil, 1))
}

func TestMatchRepository_DeleteByTournamentIDStopsOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresMatchRepository(db)

	mock.ExpectExec("DELETE FROM goal_details").WithArgs(1).WillReturnError(errors.New("lock timeout"))

	err := repo.DeleteByTournamentID(context.Background(), nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goal_details")
}

func TestMatchRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresMatchRepository(db)

	mock.ExpectQuery("FROM match_played").WithArgs(404).WillReturnRows(sqlmock.NewRows([]string{"match_no"}))

	_, err := repo.GetByID(context.Background(), nil, 404)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestMatchRepository_HandleErrors(t *testing.T) {
	r := &postgresMatchRepository{}

	assert.ErrorIs(t, r.handleMatchError(&pq.Error{Code: "23503", Constraint: "match_played_venue_id_fkey"}), ErrMatchInvalidRef)
	assert.ErrorIs(t, r.handleMatchError(&pq.Error{Code: "23514", Constraint: "match_played_teams_check"}), ErrMatchSameTeams)
}
