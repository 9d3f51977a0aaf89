package routes

import (
	"github.com/Dosada05/worldcup-system/handlers"
	"github.com/Dosada05/worldcup-system/middleware"
	"github.com/Dosada05/worldcup-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Membership *handlers.MembershipHandler
	World      *handlers.WorldHandler
	Tournament *handlers.TournamentHandler
	Draw       *handlers.DrawHandler
	Match      *handlers.MatchHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, auth *middleware.Authenticator, h Handlers) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// Аутентификация
	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	// Профиль и подписка
	router.Route("/users", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Get("/me", h.User.GetMe)
		r.Patch("/me", h.User.UpdateMe)
		r.Post("/me/avatar", h.User.UploadAvatar)
	})
	router.With(auth.Authenticate).Post("/membership/upgrade", h.Membership.Upgrade)

	// Миры с переопределёнными рейтингами
	router.Route("/worlds", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Post("/", h.World.Create)
		r.Get("/", h.World.List)
		r.Get("/{worldID}", h.World.GetByID)
		r.Put("/{worldID}/rankings", h.World.ReplaceRankings)
	})

	// Турниры и заявки
	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/{tournamentID}", h.Tournament.GetByID)
		r.Get("/{tournamentID}/teams", h.Tournament.ListTeams)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", h.Tournament.Create)
			r.Get("/", h.Tournament.List)
			r.Delete("/{tournamentID}", h.Tournament.Delete)
			r.Patch("/{tournamentID}/status", h.Tournament.UpdateStatus)
			r.Post("/{tournamentID}/logo", h.Tournament.UploadLogo)
			r.Post("/{tournamentID}/teams", h.Tournament.AddTeam)
			r.Post("/{tournamentID}/teams/autofill", h.Tournament.AutoFill)
			r.Delete("/{tournamentID}/teams/{teamID}", h.Tournament.RemoveTeam)
		})
	})

	// Жеребьёвка: чтение публичное, мутации за paywall.
	router.Route("/draw/{tournamentID}", func(r chi.Router) {
		r.Get("/pots", h.Draw.GetPots)
		r.Get("/board", h.Draw.GetBoard)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireTier(models.TierPro))
			r.Post("/pots/generate", h.Draw.GeneratePots)
			r.Post("/groups/initialize", h.Draw.InitializeGroups)
			r.Post("/draw/all", h.Draw.DrawAll)
			r.Post("/draw/pot/{potNumber}", h.Draw.DrawPot)
			r.Post("/draw/team", h.Draw.DrawTeam)
			r.Delete("/draw/clear", h.Draw.ClearDraw)
		})
	})

	// Групповой этап
	router.Route("/matches/{tournamentID}", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/standings", h.Match.GetStandings)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.RequireTier(models.TierPro))
			r.Post("/generate", h.Match.GenerateFixtures)
			r.Post("/simulate/match/{matchID}", h.Match.SimulateMatch)
			r.Post("/simulate/matchday/{matchday}", h.Match.SimulateMatchday)
		})
	})

	// Live-обновления жеребьёвки и симуляции
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
}
