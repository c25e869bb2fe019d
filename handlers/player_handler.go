package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/soccer-tournament/store"
)

// PlayerHandler обрабатывает заявки игроков на участие в турнирах.
type PlayerHandler struct {
	store *store.Store
}

func NewPlayerHandler(st *store.Store) *PlayerHandler {
	return &PlayerHandler{store: st}
}

// ListPlayers обрабатывает GET /api/admin/players
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	serveCollection(w, r, h.store, store.KindPlayers, "players", h.store.Players, nil)
}

func (h *PlayerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.store.ApprovePlayer)
}

func (h *PlayerHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.store.RejectPlayer)
}

func (h *PlayerHandler) decide(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, playerID, tournamentID int) error) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := apply(r.Context(), playerID, tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
