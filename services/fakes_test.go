package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/repositories"
)

// Фейки реализуют только то, что нужно тестам; остальные методы
// интерфейса паникуют через встроенный nil-интерфейс.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type callLog struct {
	calls []string
}

func (l *callLog) add(name string) {
	if l != nil {
		l.calls = append(l.calls, name)
	}
}

type fakeTx struct {
	log *callLog
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.log.add("tx")
	return fn(nil)
}

type fakeTournamentRepo struct {
	repositories.TournamentRepository
	log       *callLog
	byID      map[int]*models.Tournament
	createErr error
	updateErr error
	deleteErr error
	listErr   error
	nextID    int
	updated   []time.Time
}

func newFakeTournamentRepo(log *callLog, tournaments ...models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{log: log, byID: map[int]*models.Tournament{}, nextID: 100}
	for i := range tournaments {
		t := tournaments[i]
		r.byID[t.ID] = &t
	}
	return r
}

func (r *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.log.add("tournament.create")
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	t.ID = r.nextID
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	r.log.add("tournament.get")
	if t, ok := r.byID[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Tournament, error) {
	r.log.add("tournament.get_by_name")
	for _, t := range r.byID {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Tournament, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTournamentRepo) UpdateDates(ctx context.Context, exec repositories.SQLExecutor, id int, start, end time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.updated = []time.Time{start, end}
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.log.add("tournament.delete")
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.byID, id)
	return nil
}

type fakeTeamRepo struct {
	repositories.TeamRepository
	log        *callLog
	byID       map[int]*models.Team
	onTeam     map[[2]int]bool
	createErr  error
	captainErr error
	nextID     int
}

func newFakeTeamRepo(log *callLog, teams ...models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{log: log, byID: map[int]*models.Team{}, onTeam: map[[2]int]bool{}, nextID: 2000}
	for i := range teams {
		t := teams[i]
		r.byID[t.ID] = &t
	}
	return r
}

func (r *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	r.log.add("team.create")
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	team.ID = r.nextID
	r.byID[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	if t, ok := r.byID[id]; ok {
		return t, nil
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Team, error) {
	for _, t := range r.byID {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) UpdateCaptain(ctx context.Context, exec repositories.SQLExecutor, teamID, captainID int) error {
	if r.captainErr != nil {
		return r.captainErr
	}
	r.byID[teamID].CaptainID = &captainID
	return nil
}

func (r *fakeTeamRepo) IsPlayerOnTeam(ctx context.Context, exec repositories.SQLExecutor, teamID, playerID int) (bool, error) {
	return r.onTeam[[2]int{teamID, playerID}], nil
}

type fakeTournamentTeamRepo struct {
	repositories.TournamentTeamRepository
	log       *callLog
	entries   []models.TournamentTeam
	updated   map[int]models.TournamentTeam
	ids       []int
	listIDErr error
}

func (r *fakeTournamentTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, e *models.TournamentTeam) error {
	r.log.add("tournament_team.create")
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeTournamentTeamRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.TournamentTeam, error) {
	var out []models.TournamentTeam
	for _, e := range r.entries {
		if e.TournamentID == tournamentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeTournamentTeamRepo) UpdateStats(ctx context.Context, exec repositories.SQLExecutor, e *models.TournamentTeam) error {
	if r.updated == nil {
		r.updated = map[int]models.TournamentTeam{}
	}
	r.updated[e.TeamID] = *e
	return nil
}

func (r *fakeTournamentTeamRepo) ListTournamentIDs(ctx context.Context) ([]int, error) {
	return r.ids, r.listIDErr
}

func (r *fakeTournamentTeamRepo) DeleteByTournamentID(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.log.add("tournament_team.delete")
	return nil
}

type fakeRosterRepo struct {
	repositories.RosterRepository
	log        *callLog
	statuses   map[[2]int]models.RosterStatus
	recipients []models.ReminderRecipient
}

func (r *fakeRosterRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, playerID, tournamentID int, status models.RosterStatus) error {
	key := [2]int{playerID, tournamentID}
	if _, ok := r.statuses[key]; !ok {
		return repositories.ErrRosterEntryNotFound
	}
	r.statuses[key] = status
	return nil
}

func (r *fakeRosterRepo) ListReminderRecipients(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, teamIDs []int) ([]models.ReminderRecipient, error) {
	return r.recipients, nil
}

func (r *fakeRosterRepo) DeletePlayersByTournamentID(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.log.add("team_player.delete")
	return nil
}

func (r *fakeRosterRepo) DeleteSupportByTournamentID(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.log.add("team_support.delete")
	return nil
}

type fakeMatchRepo struct {
	repositories.MatchRepository
	log     *callLog
	byNo    map[int]*models.MatchPlayed
	rows    map[int]*models.MatchRow
	created []models.MatchPlayed
	nextNo  int
}

func newFakeMatchRepo(log *callLog, matches ...models.MatchPlayed) *fakeMatchRepo {
	r := &fakeMatchRepo{log: log, byNo: map[int]*models.MatchPlayed{}, rows: map[int]*models.MatchRow{}}
	for i := range matches {
		m := matches[i]
		r.byNo[m.MatchNo] = &m
		if m.MatchNo > r.nextNo {
			r.nextNo = m.MatchNo
		}
	}
	return r
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.MatchPlayed) error {
	r.nextNo++
	m.MatchNo = r.nextNo
	cp := *m
	r.byNo[m.MatchNo] = &cp
	r.created = append(r.created, cp)
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, matchNo int) (*models.MatchPlayed, error) {
	if m, ok := r.byNo[matchNo]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) GetRow(ctx context.Context, matchNo int) (*models.MatchRow, error) {
	if row, ok := r.rows[matchNo]; ok {
		return row, nil
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) ([]models.MatchPlayed, error) {
	var out []models.MatchPlayed
	for _, m := range r.byNo {
		if m.TournamentID == tournamentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, m *models.MatchPlayed) error {
	if _, ok := r.byNo[m.MatchNo]; !ok {
		return repositories.ErrMatchNotFound
	}
	cp := *m
	r.byNo[m.MatchNo] = &cp
	return nil
}

func (r *fakeMatchRepo) DeleteByTournamentID(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.log.add("match.delete")
	return nil
}

type fakeVenueRepo struct {
	repositories.VenueRepository
	venues []models.Venue
}

func (r *fakeVenueRepo) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Venue, error) {
	for i := range r.venues {
		if r.venues[i].Name == name {
			v := r.venues[i]
			return &v, nil
		}
	}
	return nil, repositories.ErrVenueNotFound
}

func (r *fakeVenueRepo) List(ctx context.Context) ([]models.Venue, error) {
	return r.venues, nil
}
