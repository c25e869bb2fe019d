package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/store"
)

type TeamHandler struct {
	store *store.Store
}

func NewTeamHandler(st *store.Store) *TeamHandler {
	return &TeamHandler{store: st}
}

// CreateTeam обрабатывает POST /api/admin/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.store.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type assignCaptainInput struct {
	PlayerID int `json:"player_id"`
}

// AssignCaptain обрабатывает PUT /api/admin/teams/{teamID}/captain
func (h *TeamHandler) AssignCaptain(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input assignCaptainInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID <= 0 {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	if err := h.store.AssignCaptain(r.Context(), teamID, input.PlayerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
