package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/storage"
	"github.com/Dosada05/soccer-tournament/store"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = fmt.Errorf("%w: dial tcp: connection refused", services.ErrConnectivity)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeTournamentService struct {
	services.TournamentService
	rows      []models.Tournament
	listErr   error
	createErr error
	deleteErr error
	datesErr  error
	deleted   []int
}

func (f *fakeTournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	return f.rows, f.listErr
}

func (f *fakeTournamentService) CreateTournament(ctx context.Context, in services.CreateTournamentInput) (*models.Tournament, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	t := models.Tournament{ID: 7, Name: in.Name, StartDate: day(in.StartDate), EndDate: day(in.EndDate)}
	f.rows = append(f.rows, t)
	return &t, nil
}

func (f *fakeTournamentService) UpdateTournamentDates(ctx context.Context, id int, start, end string) error {
	return f.datesErr
}

func (f *fakeTournamentService) DeleteTournament(ctx context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTeamService struct {
	services.TeamService
	rows []models.TeamListRow
}

func (f *fakeTeamService) ListTeams(ctx context.Context) ([]models.TeamListRow, error) {
	return f.rows, nil
}

func (f *fakeTeamService) ListTeamRoster(ctx context.Context, teamID *int) (*services.TeamRoster, error) {
	a, b := 1214, 1215
	return &services.TeamRoster{
		Players: []models.RosterPlayerRow{
			{PlayerID: 1007, Name: "Samir Nabil", TeamID: &a},
			{PlayerID: 1003, Name: "Mohammed Ali", TeamID: &b},
		},
	}, nil
}

type fakeMatchService struct {
	services.MatchService
	rows    []models.MatchRow
	venues  []models.Venue
	created *models.MatchPlayed
}

func (f *fakeMatchService) ListMatches(ctx context.Context, tournamentID *int) ([]models.MatchRow, error) {
	return f.rows, nil
}

func (f *fakeMatchService) ListMatchResults(ctx context.Context, tournamentID *int) ([]models.MatchRow, error) {
	return nil, nil
}

func (f *fakeMatchService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return f.venues, nil
}

func (f *fakeMatchService) CreateMatch(ctx context.Context, in services.CreateMatchInput) (*models.MatchPlayed, error) {
	if in.HomeTeamName == in.AwayTeamName {
		return nil, services.ErrSameTeams
	}
	f.created = &models.MatchPlayed{MatchNo: 9, TournamentID: 1, Results: models.ResultPending}
	return f.created, nil
}

// fakeStatsService has `scorers` players with descending goals and honors
// the requested limit like the repository does.
type fakeStatsService struct {
	services.StatsService
	scorers int
	limits  []int
}

func (f *fakeStatsService) TopScorers(ctx context.Context, limit int, tournamentID *int) ([]models.TopScorerRow, error) {
	f.limits = append(f.limits, limit)
	rows := make([]models.TopScorerRow, 0, f.scorers)
	for i := 0; i < f.scorers && (limit <= 0 || i < limit); i++ {
		rows = append(rows, models.TopScorerRow{
			PlayerID: i + 1, PlayerName: fmt.Sprintf("Player %d", i+1), Goals: f.scorers - i, Matches: 2,
		})
	}
	return rows, nil
}

func (f *fakeStatsService) RedCards(ctx context.Context, tournamentID *int) ([]models.RedCardRow, error) {
	return nil, nil
}

type fakeStandingService struct{ services.StandingService }

func (fakeStandingService) ListStandings(ctx context.Context, tournamentID *int) ([]models.StandingRow, error) {
	return []models.StandingRow{
		{TournamentTeam: models.TournamentTeam{TeamID: 1214, TournamentID: 1, Group: "A", Points: 7}},
		{TournamentTeam: models.TournamentTeam{TeamID: 1300, TournamentID: 2, Group: "A", Points: 3}},
	}, nil
}

type fakePlayerService struct {
	services.PlayerService
	approved [][2]int
}

func (f *fakePlayerService) ListPlayers(ctx context.Context) ([]models.PlayerListRow, error) {
	return nil, nil
}

func (f *fakePlayerService) ApprovePlayer(ctx context.Context, playerID, tournamentID int) error {
	if playerID == 404 {
		return services.ErrRosterEntryNotFound
	}
	f.approved = append(f.approved, [2]int{playerID, tournamentID})
	return nil
}

type fakeExportService struct{ services.ExportService }

func (fakeExportService) ExportJSON(ctx context.Context, kind string, payload interface{}) (*storage.UploadResult, error) {
	return nil, fmt.Errorf("%w: object storage", services.ErrFeatureDisabled)
}

type fakeDashboardService struct {
	services.DashboardService
	err error
}

func (f *fakeDashboardService) GetStatus(ctx context.Context) (*models.DatabaseStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.DatabaseStatus{Connected: true, Stats: models.TableStats{Tournaments: 4, Teams: 5}}, nil
}

type fakeAuthService struct{ services.AuthService }

func (fakeAuthService) Login(ctx context.Context, in services.LoginInput) (string, error) {
	if in.Username == "admin" && in.Password == "secret" {
		return "signed.token.value", nil
	}
	return "", services.ErrInvalidCredentials
}

func (fakeAuthService) ParseToken(string) (jwt.MapClaims, error) { return nil, services.ErrInvalidToken }

type env struct {
	router      chi.Router
	store       *store.Store
	tournaments *fakeTournamentService
	matches     *fakeMatchService
	players     *fakePlayerService
	stats       *fakeStatsService
	dashboard   *fakeDashboardService
}

func newEnv() *env {
	e := &env{
		tournaments: &fakeTournamentService{rows: []models.Tournament{
			{ID: 1, Name: "Summer Championship 2025", StartDate: day("2025-05-15"), EndDate: day("2025-08-30")},
		}},
		matches: &fakeMatchService{
			rows: []models.MatchRow{
				{MatchNo: 1, TournamentID: 1, Results: models.ResultWin, GoalScore: "3-1"},
				{MatchNo: 4, TournamentID: 4, Results: models.ResultPending, GoalScore: "0-0"},
			},
			venues: []models.Venue{{ID: 1, Name: "Central Stadium", Status: models.VenueActive, Capacity: 50000}},
		},
		players:   &fakePlayerService{},
		stats:     &fakeStatsService{scorers: 3},
		dashboard: &fakeDashboardService{},
	}
	e.store = store.New(store.Services{
		Tournaments: e.tournaments,
		Teams: &fakeTeamService{rows: []models.TeamListRow{
			{TeamID: 1214, TeamName: "Team Alpha", TournamentID: intPtr(1)},
			{TeamID: 1216, TeamName: "Team Gamma"},
		}},
		Matches:   e.matches,
		Standings: fakeStandingService{},
		Stats:     e.stats,
		Players:   e.players,
		Exports:   fakeExportService{},
	}, store.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return day("2025-06-01") },
	})

	reports := NewReportHandler(e.store, e.matches)
	tournaments := NewTournamentHandler(e.store)
	matches := NewMatchHandler(e.store)
	players := NewPlayerHandler(e.store)
	dashboard := NewDashboardHandler(e.dashboard, e.store)
	auth := NewAuthHandler(fakeAuthService{})

	r := chi.NewRouter()
	r.Post("/api/auth/login", auth.Login)
	r.Get("/api/tournaments", reports.ListTournaments)
	r.Get("/api/teams", reports.ListTeams)
	r.Get("/api/teams/roster", reports.ListRoster)
	r.Get("/api/matches", reports.ListMatches)
	r.Get("/api/stats/top-scorers", reports.ListTopScorers)
	r.Get("/api/standings", reports.ListStandings)
	r.Get("/api/venues", reports.ListVenues)
	r.Get("/api/notifications", reports.ListNotifications)
	r.Post("/api/admin/tournaments", tournaments.CreateHandler)
	r.Delete("/api/admin/tournaments/{tournamentID}", tournaments.DeleteHandler)
	r.Patch("/api/admin/tournaments/{tournamentID}/dates", tournaments.UpdateDatesHandler)
	r.Post("/api/admin/matches", matches.CreateMatch)
	r.Post("/api/admin/players/{playerID}/tournaments/{tournamentID}/approve", players.Approve)
	r.Post("/api/admin/reports/export", dashboard.ExportReports)
	r.Delete("/api/admin/notifications", dashboard.ClearNotifications)
	r.Get("/api/admin/status", dashboard.Status)
	e.router = r
	return e
}

func intPtr(v int) *int { return &v }

func (e *env) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestListTournaments_LoadsIdleCollection(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodGet, "/api/tournaments", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ready", body["state"])
	items := body["tournaments"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "May 15, 2025", first["start_date"])
	assert.Equal(t, "Active", first["status"])
}

func TestListTournaments_DatabaseDown(t *testing.T) {
	e := newEnv()
	e.tournaments.listErr = errDown

	rec := e.do(http.MethodGet, "/api/tournaments", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListTournaments_StaleDataAfterFailedRefresh(t *testing.T) {
	e := newEnv()
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/tournaments", "").Code)

	e.tournaments.listErr = errDown
	rec := e.do(http.MethodGet, "/api/tournaments?refresh=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "error", body["state"])
	assert.NotEmpty(t, body["error"])
	assert.Len(t, body["tournaments"], 1)
}

func TestListFilters(t *testing.T) {
	e := newEnv()

	body := decode(t, e.do(http.MethodGet, "/api/matches?tournament_id=4", ""))
	matches := body["matches"].([]interface{})
	require.Len(t, matches, 1)
	assert.EqualValues(t, 4, matches[0].(map[string]interface{})["id"])

	body = decode(t, e.do(http.MethodGet, "/api/teams?tournament_id=1", ""))
	assert.Len(t, body["teams"], 1)

	body = decode(t, e.do(http.MethodGet, "/api/teams/roster?team_id=1215", ""))
	assert.Len(t, body["members"], 1)

	body = decode(t, e.do(http.MethodGet, "/api/standings?tournament_id=2", ""))
	assert.Len(t, body["standings"], 1)

	body = decode(t, e.do(http.MethodGet, "/api/stats/top-scorers?limit=2", ""))
	assert.Len(t, body["top_scorers"], 2)
}

func TestListTopScorers_LimitAboveCachedSize(t *testing.T) {
	e := newEnv()
	e.stats.scorers = 15

	body := decode(t, e.do(http.MethodGet, "/api/stats/top-scorers?limit=12", ""))
	scorers := body["top_scorers"].([]interface{})
	require.Len(t, scorers, 12)
	assert.EqualValues(t, 12, scorers[11].(map[string]interface{})["rank"])
	assert.Equal(t, "ready", body["state"])
	assert.Equal(t, []int{12}, e.stats.limits)

	body = decode(t, e.do(http.MethodGet, "/api/stats/top-scorers?limit=4", ""))
	assert.Len(t, body["top_scorers"], 4)
	assert.Equal(t, []int{12, services.DefaultTopScorersLimit}, e.stats.limits)
}

func TestListFilters_BadQuery(t *testing.T) {
	e := newEnv()
	for _, target := range []string{
		"/api/teams?tournament_id=abc",
		"/api/matches?tournament_id=0",
		"/api/stats/top-scorers?limit=-1",
		"/api/teams/roster?team_id=x",
	} {
		rec := e.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListVenues(t *testing.T) {
	e := newEnv()
	body := decode(t, e.do(http.MethodGet, "/api/venues", ""))
	venues := body["venues"].([]interface{})
	require.Len(t, venues, 1)
	assert.Equal(t, true, venues[0].(map[string]interface{})["active"])
}

func TestCreateTournament(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPost, "/api/admin/tournaments", `{"name":"Winter Cup","start_date":"2025-12-01","end_date":"2025-12-20"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	notes := decode(t, e.do(http.MethodGet, "/api/notifications", ""))["notifications"].([]interface{})
	require.Len(t, notes, 1)
	assert.Equal(t, "success", notes[0].(map[string]interface{})["level"])
}

func TestCreateTournament_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", services.ErrTournamentInvalidDateRange, http.StatusBadRequest},
		{"conflict", services.ErrTournamentNameConflict, http.StatusConflict},
		{"database", errDown, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			e.tournaments.createErr = tt.err
			rec := e.do(http.MethodPost, "/api/admin/tournaments", `{"name":"X","start_date":"2025-12-01","end_date":"2025-11-01"}`)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCreateTournament_BadBody(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPost, "/api/admin/tournaments", `{"title":"X"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown key")

	rec = e.do(http.MethodPost, "/api/admin/tournaments", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTournament(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodDelete, "/api/admin/tournaments/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int{1}, e.tournaments.deleted)

	e.tournaments.deleteErr = services.ErrTournamentNotFound
	rec = e.do(http.MethodDelete, "/api/admin/tournaments/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(http.MethodDelete, "/api/admin/tournaments/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDates_RequiresBothDates(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPatch, "/api/admin/tournaments/1/dates", `{"start_date":"2025-05-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodPatch, "/api/admin/tournaments/1/dates", `{"start_date":"2025-05-01","end_date":"2025-09-01"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateMatch_SameTeams(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPost, "/api/admin/matches", `{"date":"2025-06-10","tournament":"Summer Championship 2025","home":"Team Alpha","away":"Team Alpha","venue":"Central Stadium"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "home and away teams must be different")
}

func TestApprovePlayer(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPost, "/api/admin/players/1009/tournaments/1/approve", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, [][2]int{{1009, 1}}, e.players.approved)

	rec = e.do(http.MethodPost, "/api/admin/players/404/tournaments/1/approve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_Disabled(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPost, "/api/admin/reports/export", "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestClearNotifications(t *testing.T) {
	e := newEnv()
	e.do(http.MethodDelete, "/api/admin/tournaments/1", "")
	require.NotEmpty(t, e.store.Notifications())

	rec := e.do(http.MethodDelete, "/api/admin/notifications", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, e.store.Notifications())
}

func TestStatus(t *testing.T) {
	e := newEnv()
	body := decode(t, e.do(http.MethodGet, "/api/admin/status", ""))
	assert.Equal(t, true, body["connected"])
	assert.EqualValues(t, 4, body["stats"].(map[string]interface{})["tournaments"])

	e.dashboard.err = errDown
	rec := e.do(http.MethodGet, "/api/admin/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newEnv()
	rec := e.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed.token.value", decode(t, rec)["token"])

	rec = e.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(http.MethodPost, "/api/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
