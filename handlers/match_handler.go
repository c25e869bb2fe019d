package handlers

import (
	"net/http"

	"github.com/Dosada05/soccer-tournament/services"
	"github.com/Dosada05/soccer-tournament/store"
)

type MatchHandler struct {
	store *store.Store
}

func NewMatchHandler(st *store.Store) *MatchHandler {
	return &MatchHandler{store: st}
}

// CreateMatch обрабатывает POST /api/admin/matches
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.store.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult обрабатывает PUT /api/admin/matches/{matchNo}/result
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	matchNo, err := getIDFromURL(r, "matchNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.store.RecordMatchResult(r.Context(), matchNo, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type reminderInput struct {
	Message string `json:"message"`
}

// SendReminder обрабатывает POST /api/admin/matches/{matchNo}/reminder
func (h *MatchHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	matchNo, err := getIDFromURL(r, "matchNo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input reminderInput
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	sent, err := h.store.SendMatchReminder(r.Context(), matchNo, input.Message)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sent": sent}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
