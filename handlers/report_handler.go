package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/store"
	"github.com/Dosada05/soccer-tournament/views"
)

// ReportHandler serves the public lists from the store.
type ReportHandler struct {
	store        *store.Store
	matchService services.MatchService
}

func NewReportHandler(st *store.Store, ms services.MatchService) *ReportHandler {
	return &ReportHandler{store: st, matchService: ms}
}

// serveCollection отдаёт коллекцию из store. Пустая коллекция (idle) и
// ?refresh=true перечитываются из базы. После неудачного обновления
// отдаются последние успешно загруженные данные с полем error.
func serveCollection[T any](
	w http.ResponseWriter,
	r *http.Request,
	st *store.Store,
	kind store.Kind,
	key string,
	get func() store.Collection[T],
	keep func(T) bool,
) {
	c := get()
	if wantsRefresh(r) || c.State == store.StateIdle {
		if err := st.Refresh(r.Context(), kind); err != nil && c.RefreshedAt.IsZero() {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		c = get()
	}
	if c.State == store.StateError && c.RefreshedAt.IsZero() {
		serviceUnavailableResponse(w, r, errors.New(c.Error))
		return
	}

	items := c.Items
	if keep != nil {
		items = make([]T, 0, len(c.Items))
		for _, it := range c.Items {
			if keep(it) {
				items = append(items, it)
			}
		}
	}

	resp := jsonResponse{
		key:            items,
		"state":        c.State,
		"refreshed_at": c.RefreshedAt,
	}
	if c.Error != "" {
		resp["error"] = c.Error
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTournaments обрабатывает GET /api/tournaments
func (h *ReportHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	serveCollection(w, r, h.store, store.KindTournaments, "tournaments", h.store.Tournaments, nil)
}

// ListTeams обрабатывает GET /api/teams?tournament_id=
func (h *ReportHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := queryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var keep func(views.Team) bool
	if tournamentID != nil {
		keep = func(t views.Team) bool { return t.TournamentID != nil && *t.TournamentID == *tournamentID }
	}
	serveCollection(w, r, h.store, store.KindTeams, "teams", h.store.Teams, keep)
}

// ListMatches обрабатывает GET /api/matches?tournament_id=
func (h *ReportHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := queryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var keep func(views.Match) bool
	if tournamentID != nil {
		keep = func(m views.Match) bool { return m.TournamentID == *tournamentID }
	}
	serveCollection(w, r, h.store, store.KindMatches, "matches", h.store.Matches, keep)
}

func (h *ReportHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	serveCollection(w, r, h.store, store.KindResults, "results", h.store.Results, nil)
}

// ListTopScorers обрабатывает GET /api/stats/top-scorers?limit=
// Лимит в пределах кэша режет коллекцию store, больший читается из базы.
func (h *ReportHandler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	var keep func(views.TopScorer) bool
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
		if limit > h.store.TopScorersLimit() {
			h.listTopScorersBeyondCache(w, r, limit)
			return
		}
		keep = func(s views.TopScorer) bool { return s.Rank <= limit }
	}
	serveCollection(w, r, h.store, store.KindTopScorers, "top_scorers", h.store.TopScorers, keep)
}

func (h *ReportHandler) listTopScorersBeyondCache(w http.ResponseWriter, r *http.Request, limit int) {
	c, err := h.store.FetchTopScorers(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	resp := jsonResponse{
		"top_scorers":  c.Items,
		"state":        c.State,
		"refreshed_at": c.RefreshedAt,
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReportHandler) ListRedCards(w http.ResponseWriter, r *http.Request) {
	serveCollection(w, r, h.store, store.KindRedCards, "red_cards", h.store.RedCards, nil)
}

// ListRoster обрабатывает GET /api/teams/roster?team_id=
func (h *ReportHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := queryID(r, "team_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var keep func(views.TeamMember) bool
	if teamID != nil {
		keep = func(m views.TeamMember) bool { return m.TeamID == *teamID }
	}
	serveCollection(w, r, h.store, store.KindRoster, "members", h.store.Roster, keep)
}

// ListStandings обрабатывает GET /api/standings?tournament_id=
func (h *ReportHandler) ListStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := queryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var keep func(views.Standing) bool
	if tournamentID != nil {
		keep = func(s views.Standing) bool { return s.TournamentID == *tournamentID }
	}
	serveCollection(w, r, h.store, store.KindStandings, "standings", h.store.Standings, keep)
}

// ListVenues читает площадки напрямую, в store их нет.
func (h *ReportHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.matchService.ListVenues(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"venues": views.Venues(venues)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReportHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"notifications": h.store.Notifications()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
