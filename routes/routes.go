package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/soccer-tournament/docs"
	"github.com/Dosada05/soccer-tournament/handlers"
	"github.com/Dosada05/soccer-tournament/middleware"
	"github.com/Dosada05/soccer-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Reports     *handlers.ReportHandler
	Tournaments *handlers.TournamentHandler
	Teams       *handlers.TeamHandler
	Matches     *handlers.MatchHandler
	Players     *handlers.PlayerHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, h Handlers, tokens middleware.TokenParser, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Websocket не проходит через Timeout: соединение долгоживущее
	router.Get("/ws/notifications", h.WebSocket.ServeNotifications)
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeTournament)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		r.Post("/auth/login", h.Auth.Login)

		r.Get("/tournaments", h.Reports.ListTournaments)
		r.Get("/teams", h.Reports.ListTeams)
		r.Get("/teams/roster", h.Reports.ListRoster)
		r.Get("/matches", h.Reports.ListMatches)
		r.Get("/matches/results", h.Reports.ListResults)
		r.Get("/stats/top-scorers", h.Reports.ListTopScorers)
		r.Get("/stats/red-cards", h.Reports.ListRedCards)
		r.Get("/standings", h.Reports.ListStandings)
		r.Get("/venues", h.Reports.ListVenues)
		r.Get("/notifications", h.Reports.ListNotifications)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Use(middleware.Authorize(services.RoleAdmin))

			r.Route("/tournaments", func(r chi.Router) {
				r.Post("/", h.Tournaments.CreateHandler)
				r.Route("/{tournamentID}", func(r chi.Router) {
					r.Delete("/", h.Tournaments.DeleteHandler)
					r.Patch("/dates", h.Tournaments.UpdateDatesHandler)
					r.Post("/fixtures", h.Tournaments.GenerateFixturesHandler)
				})
			})

			r.Post("/teams", h.Teams.CreateTeam)
			r.Put("/teams/{teamID}/captain", h.Teams.AssignCaptain)

			r.Post("/matches", h.Matches.CreateMatch)
			r.Put("/matches/{matchNo}/result", h.Matches.RecordResult)
			r.Post("/matches/{matchNo}/reminder", h.Matches.SendReminder)

			r.Get("/players", h.Players.ListPlayers)
			r.Post("/players/{playerID}/tournaments/{tournamentID}/approve", h.Players.Approve)
			r.Post("/players/{playerID}/tournaments/{tournamentID}/reject", h.Players.Reject)

			r.Post("/reports/export", h.Dashboard.ExportReports)
			r.Delete("/notifications", h.Dashboard.ClearNotifications)
			r.Get("/status", h.Dashboard.Status)
			r.Get("/status/tables", h.Dashboard.TableCounts)
		})
	})
}
