package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/soccer-tournament/notify"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWSServer(t *testing.T, origins []string) (*notify.Hub, *httptest.Server) {
	t.Helper()
	hub := notify.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	h := NewWebSocketHandler(hub, origins)
	r := chi.NewRouter()
	r.Get("/ws/notifications", h.ServeNotifications)
	r.Get("/ws/tournaments/{tournamentID}", h.ServeTournament)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestWebSocket_TournamentRoom(t *testing.T) {
	hub, srv := newWSServer(t, []string{"http://localhost:3000"})

	header := http.Header{"Origin": []string{"http://localhost:3000"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/tournaments/3"), header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(notify.TournamentRoom(3)) == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestWebSocket_RejectsUnknownOrigin(t *testing.T) {
	_, srv := newWSServer(t, []string{"http://localhost:3000"})

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/notifications"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocket_BadTournamentID(t *testing.T) {
	_, srv := newWSServer(t, nil)

	resp, err := http.Get(srv.URL + "/ws/tournaments/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
