package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/store"
)

// TournamentHandler обслуживает административные операции над турнирами.
type TournamentHandler struct {
	store *store.Store
}

func NewTournamentHandler(st *store.Store) *TournamentHandler {
	return &TournamentHandler{store: st}
}

// CreateHandler обрабатывает POST /api/admin/tournaments
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.store.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateDatesInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// UpdateDatesHandler обрабатывает PATCH /api/admin/tournaments/{tournamentID}/dates
func (h *TournamentHandler) UpdateDatesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input updateDatesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.StartDate == "" || input.EndDate == "" {
		badRequestResponse(w, r, errors.New("start_date and end_date are required"))
		return
	}

	if err := h.store.UpdateTournamentDates(r.Context(), id, input.StartDate, input.EndDate); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHandler обрабатывает DELETE /api/admin/tournaments/{tournamentID}
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.store.DeleteTournament(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateFixturesHandler обрабатывает POST /api/admin/tournaments/{tournamentID}/fixtures
func (h *TournamentHandler) GenerateFixturesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.store.GenerateFixtures(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches, "count": len(matches)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
