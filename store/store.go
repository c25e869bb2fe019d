// Package store keeps the data the front-end renders: one collection per
// report, refreshed explicitly after loads and admin mutations, plus the
// recent notifications.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/soccer-tournament/models"
	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/storage"
	"github.com/Dosada05/soccer-tournament/views"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxNotifications is how many notifications are kept, newest first.
const MaxNotifications = 50

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

type Kind string

const (
	KindTournaments Kind = "tournaments"
	KindTeams       Kind = "teams"
	KindMatches     Kind = "matches"
	KindResults     Kind = "results"
	KindTopScorers  Kind = "top_scorers"
	KindRedCards    Kind = "red_cards"
	KindRoster      Kind = "roster"
	KindStandings   Kind = "standings"
	KindPlayers     Kind = "players"
)

var AllKinds = []Kind{
	KindTournaments, KindTeams, KindMatches, KindResults, KindTopScorers,
	KindRedCards, KindRoster, KindStandings, KindPlayers,
}

// Collection is one report with its load state. Items keep their last good
// value when a refresh fails.
type Collection[T any] struct {
	State       State     `json:"state"`
	Items       []T       `json:"items"`
	Error       string    `json:"error,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (c Collection[T]) clone() Collection[T] {
	out := c
	out.Items = make([]T, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// Notifier receives every notification after it is recorded.
type Notifier interface {
	Notify(n models.Notification)
}

type Services struct {
	Tournaments services.TournamentService
	Teams       services.TeamService
	Matches     services.MatchService
	Standings   services.StandingService
	Stats       services.StatsService
	Players     services.PlayerService
	Reminders   services.ReminderService
	Exports     services.ExportService
}

type Options struct {
	// TopScorersLimit defaults to services.DefaultTopScorersLimit.
	TopScorersLimit int
	Notifier        Notifier
	Logger          *slog.Logger
	Now             func() time.Time
}

type Store struct {
	svc      Services
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	limit    int

	mu            sync.RWMutex
	tournaments   Collection[views.Tournament]
	teams         Collection[views.Team]
	matches       Collection[views.Match]
	results       Collection[views.MatchResult]
	topScorers    Collection[views.TopScorer]
	redCards      Collection[views.RedCard]
	roster        Collection[views.TeamMember]
	standings     Collection[views.Standing]
	players       Collection[views.Player]
	notifications []models.Notification
	// generations считает запуски fetch по коллекциям; результат устаревшего
	// запуска отбрасывается.
	generations map[Kind]uint64
}

func New(svc Services, opts Options) *Store {
	s := &Store{
		svc:      svc,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		now:      opts.Now,
		limit:    opts.TopScorersLimit,

		generations: make(map[Kind]uint64, len(AllKinds)),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.limit <= 0 {
		s.limit = services.DefaultTopScorersLimit
	}
	for _, st := range []*State{
		&s.tournaments.State, &s.teams.State, &s.matches.State, &s.results.State,
		&s.topScorers.State, &s.redCards.State, &s.roster.State, &s.standings.State,
		&s.players.State,
	} {
		*st = StateIdle
	}
	return s
}

// Load fetches every collection in parallel.
func (s *Store) Load(ctx context.Context) error {
	return s.Refresh(ctx, AllKinds...)
}

// Refresh reloads the given collections in parallel and waits for all of them.
// The first critical failure is returned; other collections still finish.
func (s *Store) Refresh(ctx context.Context, kinds ...Kind) error {
	var g errgroup.Group
	for _, k := range uniqueKinds(kinds) {
		k := k
		g.Go(func() error { return s.refreshKind(ctx, k) })
	}
	return g.Wait()
}

func uniqueKinds(kinds []Kind) []Kind {
	seen := make(map[Kind]bool, len(kinds))
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func (s *Store) refreshKind(ctx context.Context, kind Kind) error {
	switch kind {
	case KindTournaments:
		return fetch(ctx, s, kind, &s.tournaments, true, func(ctx context.Context) ([]views.Tournament, error) {
			rows, err := s.svc.Tournaments.ListTournaments(ctx)
			if err != nil {
				return nil, err
			}
			return views.Tournaments(rows, s.now()), nil
		})
	case KindTeams:
		return fetch(ctx, s, kind, &s.teams, true, func(ctx context.Context) ([]views.Team, error) {
			rows, err := s.svc.Teams.ListTeams(ctx)
			if err != nil {
				return nil, err
			}
			return views.Teams(rows), nil
		})
	case KindMatches:
		return fetch(ctx, s, kind, &s.matches, true, func(ctx context.Context) ([]views.Match, error) {
			rows, err := s.svc.Matches.ListMatches(ctx, nil)
			if err != nil {
				return nil, err
			}
			return views.Matches(rows), nil
		})
	case KindResults:
		return fetch(ctx, s, kind, &s.results, true, func(ctx context.Context) ([]views.MatchResult, error) {
			rows, err := s.svc.Matches.ListMatchResults(ctx, nil)
			if err != nil {
				return nil, err
			}
			return views.MatchResults(rows), nil
		})
	case KindTopScorers:
		return fetch(ctx, s, kind, &s.topScorers, false, func(ctx context.Context) ([]views.TopScorer, error) {
			rows, err := s.svc.Stats.TopScorers(ctx, s.limit, nil)
			if err != nil {
				return nil, err
			}
			return views.TopScorers(rows), nil
		})
	case KindRedCards:
		return fetch(ctx, s, kind, &s.redCards, false, func(ctx context.Context) ([]views.RedCard, error) {
			rows, err := s.svc.Stats.RedCards(ctx, nil)
			if err != nil {
				return nil, err
			}
			return views.RedCards(rows), nil
		})
	case KindRoster:
		return fetch(ctx, s, kind, &s.roster, false, func(ctx context.Context) ([]views.TeamMember, error) {
			roster, err := s.svc.Teams.ListTeamRoster(ctx, nil)
			if err != nil {
				return nil, err
			}
			return views.TeamMembers(roster.Players, roster.Staff), nil
		})
	case KindStandings:
		return fetch(ctx, s, kind, &s.standings, true, func(ctx context.Context) ([]views.Standing, error) {
			rows, err := s.svc.Standings.ListStandings(ctx, nil)
			if err != nil {
				return nil, err
			}
			return views.Standings(rows), nil
		})
	case KindPlayers:
		return fetch(ctx, s, kind, &s.players, true, func(ctx context.Context) ([]views.Player, error) {
			rows, err := s.svc.Players.ListPlayers(ctx)
			if err != nil {
				return nil, err
			}
			return views.Players(rows), nil
		})
	}
	return fmt.Errorf("unknown collection %q", kind)
}

// fetch drives one collection through loading -> ready|error. Non-critical
// reports that fail become an empty ready collection.
func fetch[T any](ctx context.Context, s *Store, kind Kind, c *Collection[T], critical bool, get func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	s.generations[kind]++
	gen := s.generations[kind]
	c.State = StateLoading
	s.mu.Unlock()

	items, err := get(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generations[kind] {
		s.logger.DebugContext(ctx, "Dropping stale collection result", slog.String("collection", string(kind)))
		if err != nil && critical {
			return fmt.Errorf("load %s: %w", kind, err)
		}
		return nil
	}
	if err != nil {
		if !critical {
			s.logger.WarnContext(ctx, "Report unavailable, showing empty list", slog.String("collection", string(kind)), slog.Any("error", err))
			c.State = StateReady
			c.Items = []T{}
			c.Error = ""
			c.RefreshedAt = s.now()
			return nil
		}
		s.logger.ErrorContext(ctx, "Failed to load collection", slog.String("collection", string(kind)), slog.Any("error", err))
		c.State = StateError
		c.Error = err.Error()
		return fmt.Errorf("load %s: %w", kind, err)
	}
	if items == nil {
		items = []T{}
	}
	c.State = StateReady
	c.Items = items
	c.Error = ""
	c.RefreshedAt = s.now()
	return nil
}

// TopScorersLimit is how many scorers the cached collection holds.
func (s *Store) TopScorersLimit() int { return s.limit }

// FetchTopScorers reads the first limit scorers straight from the database,
// for limits larger than the cached collection.
func (s *Store) FetchTopScorers(ctx context.Context, limit int) (Collection[views.TopScorer], error) {
	rows, err := s.svc.Stats.TopScorers(ctx, limit, nil)
	if err != nil {
		return Collection[views.TopScorer]{}, err
	}
	return Collection[views.TopScorer]{
		State:       StateReady,
		Items:       views.TopScorers(rows),
		RefreshedAt: s.now(),
	}, nil
}

func read[T any](s *Store, c *Collection[T]) Collection[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.clone()
}

func (s *Store) Tournaments() Collection[views.Tournament] { return read(s, &s.tournaments) }
func (s *Store) Teams() Collection[views.Team]             { return read(s, &s.teams) }
func (s *Store) Matches() Collection[views.Match]          { return read(s, &s.matches) }
func (s *Store) Results() Collection[views.MatchResult]    { return read(s, &s.results) }
func (s *Store) TopScorers() Collection[views.TopScorer]   { return read(s, &s.topScorers) }
func (s *Store) RedCards() Collection[views.RedCard]       { return read(s, &s.redCards) }
func (s *Store) Roster() Collection[views.TeamMember]      { return read(s, &s.roster) }
func (s *Store) Standings() Collection[views.Standing]     { return read(s, &s.standings) }
func (s *Store) Players() Collection[views.Player]         { return read(s, &s.players) }

// Snapshot is every report at one point in time, as exported to object
// storage.
type Snapshot struct {
	TakenAt     time.Time           `json:"taken_at"`
	Tournaments []views.Tournament  `json:"tournaments"`
	Teams       []views.Team        `json:"teams"`
	Matches     []views.Match       `json:"matches"`
	Results     []views.MatchResult `json:"results"`
	TopScorers  []views.TopScorer   `json:"top_scorers"`
	RedCards    []views.RedCard     `json:"red_cards"`
	Roster      []views.TeamMember  `json:"roster"`
	Standings   []views.Standing    `json:"standings"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		TakenAt:     s.now().UTC(),
		Tournaments: s.tournaments.clone().Items,
		Teams:       s.teams.clone().Items,
		Matches:     s.matches.clone().Items,
		Results:     s.results.clone().Items,
		TopScorers:  s.topScorers.clone().Items,
		RedCards:    s.redCards.clone().Items,
		Roster:      s.roster.clone().Items,
		Standings:   s.standings.clone().Items,
	}
}

func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) ClearNotifications() {
	s.mu.Lock()
	s.notifications = nil
	s.mu.Unlock()
}

func (s *Store) notify(level, title, message string, tournamentID *int) {
	n := models.Notification{
		ID:           uuid.NewString(),
		Level:        level,
		Title:        title,
		Message:      message,
		TournamentID: tournamentID,
		CreatedAt:    s.now().UTC(),
	}

	s.mu.Lock()
	s.notifications = append([]models.Notification{n}, s.notifications...)
	if len(s.notifications) > MaxNotifications {
		s.notifications = s.notifications[:MaxNotifications]
	}
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

// finish is the common tail of every mutation. A failed write leaves the
// collections as they were.
func (s *Store) finish(ctx context.Context, err error, action, success string, tournamentID *int, kinds ...Kind) error {
	if err != nil {
		s.logger.WarnContext(ctx, "Admin action failed", slog.String("action", action), slog.Any("error", err))
		s.notify(models.NotificationError, action+" failed", err.Error(), tournamentID)
		return err
	}
	if len(kinds) > 0 {
		if rerr := s.Refresh(ctx, kinds...); rerr != nil {
			s.logger.WarnContext(ctx, "Refresh after admin action failed", slog.String("action", action), slog.Any("error", rerr))
		}
	}
	s.notify(models.NotificationSuccess, action, success, tournamentID)
	return nil
}

func (s *Store) CreateTournament(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	t, err := s.svc.Tournaments.CreateTournament(ctx, input)
	var id *int
	msg := ""
	if err == nil {
		id = &t.ID
		msg = fmt.Sprintf("Tournament %q created", t.Name)
	}
	if err := s.finish(ctx, err, "Create tournament", msg, id, KindTournaments); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) UpdateTournamentDates(ctx context.Context, id int, startDate, endDate string) error {
	err := s.svc.Tournaments.UpdateTournamentDates(ctx, id, startDate, endDate)
	return s.finish(ctx, err, "Update tournament dates",
		fmt.Sprintf("Tournament %d now runs %s to %s", id, startDate, endDate), &id, KindTournaments)
}

// DeleteTournament touches every report, so everything is reloaded.
func (s *Store) DeleteTournament(ctx context.Context, id int) error {
	err := s.svc.Tournaments.DeleteTournament(ctx, id)
	return s.finish(ctx, err, "Delete tournament",
		fmt.Sprintf("Tournament %d and its matches, rosters and registrations were deleted", id), &id, AllKinds...)
}

func (s *Store) CreateTeam(ctx context.Context, input services.CreateTeamInput) (*models.Team, error) {
	team, err := s.svc.Teams.CreateTeam(ctx, input)
	msg := ""
	if err == nil {
		msg = fmt.Sprintf("Team %q registered in %q", team.Name, input.TournamentName)
	}
	if err := s.finish(ctx, err, "Create team", msg, nil, KindTeams, KindStandings); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Store) AssignCaptain(ctx context.Context, teamID, captainID int) error {
	err := s.svc.Teams.AssignCaptain(ctx, teamID, captainID)
	return s.finish(ctx, err, "Assign captain",
		fmt.Sprintf("Player %d is now captain of team %d", captainID, teamID), nil, KindTeams, KindRoster)
}

func (s *Store) CreateMatch(ctx context.Context, input services.CreateMatchInput) (*models.MatchPlayed, error) {
	m, err := s.svc.Matches.CreateMatch(ctx, input)
	var id *int
	msg := ""
	if err == nil {
		id = &m.TournamentID
		msg = fmt.Sprintf("%s vs %s scheduled for %s", input.HomeTeamName, input.AwayTeamName, input.Date)
	}
	if err := s.finish(ctx, err, "Create match", msg, id, KindMatches); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) RecordMatchResult(ctx context.Context, matchNo int, input services.RecordResultInput) (*models.MatchPlayed, error) {
	m, err := s.svc.Matches.RecordMatchResult(ctx, matchNo, input)
	var id *int
	msg := ""
	if err == nil {
		id = &m.TournamentID
		msg = fmt.Sprintf("Match %d finished %s", m.MatchNo, m.GoalScore)
	}
	if err := s.finish(ctx, err, "Record match result", msg, id,
		KindMatches, KindResults, KindStandings, KindTopScorers); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) GenerateFixtures(ctx context.Context, tournamentID int, input services.GenerateFixturesInput) ([]models.MatchPlayed, error) {
	created, err := s.svc.Matches.GenerateGroupFixtures(ctx, tournamentID, input)
	if err := s.finish(ctx, err, "Generate fixtures",
		fmt.Sprintf("%d group matches scheduled", len(created)), &tournamentID, KindMatches); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) ApprovePlayer(ctx context.Context, playerID, tournamentID int) error {
	err := s.svc.Players.ApprovePlayer(ctx, playerID, tournamentID)
	return s.finish(ctx, err, "Approve player",
		fmt.Sprintf("Player %d approved", playerID), &tournamentID, KindPlayers, KindTeams)
}

func (s *Store) RejectPlayer(ctx context.Context, playerID, tournamentID int) error {
	err := s.svc.Players.RejectPlayer(ctx, playerID, tournamentID)
	return s.finish(ctx, err, "Reject player",
		fmt.Sprintf("Player %d rejected", playerID), &tournamentID, KindPlayers, KindTeams)
}

// SendMatchReminder changes no data; it only reports the outcome.
func (s *Store) SendMatchReminder(ctx context.Context, matchNo int, message string) (int, error) {
	sent, err := s.svc.Reminders.SendMatchReminder(ctx, matchNo, message)
	if err := s.finish(ctx, err, "Send match reminder",
		fmt.Sprintf("Reminder for match %d sent to %d recipient(s)", matchNo, sent), nil); err != nil {
		return sent, err
	}
	return sent, nil
}

// ExportSnapshot uploads the current reports as one JSON document.
func (s *Store) ExportSnapshot(ctx context.Context) (*storage.UploadResult, error) {
	res, err := s.svc.Exports.ExportJSON(ctx, "snapshot", s.Snapshot())
	msg := ""
	if err == nil {
		msg = "Snapshot exported to " + res.Location
	}
	if err := s.finish(ctx, err, "Export reports", msg, nil); err != nil {
		return nil, err
	}
	return res, nil
}
