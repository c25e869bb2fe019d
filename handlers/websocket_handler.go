package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/soccer-tournament/notify"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler принимает подключения только с разрешённых Origin.
// Пустой список разрешает любой Origin.
func NewWebSocketHandler(hub *notify.Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin] || allowed["*"]
			},
		},
	}
}

// ServeNotifications подписывает клиента на все уведомления.
// Клиент подключается к /ws/notifications
func (h *WebSocketHandler) ServeNotifications(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, notify.RoomAll)
}

// ServeTournament подписывает клиента на уведомления одного турнира.
// Клиент подключается к /ws/tournaments/{tournamentID}
func (h *WebSocketHandler) ServeTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.serve(w, r, notify.TournamentRoom(tournamentID))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		slog.WarnContext(r.Context(), "Failed to upgrade websocket connection", slog.String("room", room), slog.Any("error", err))
		return
	}
	h.hub.Serve(conn, room)
}
