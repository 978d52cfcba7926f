package routes

import (
	"github.com/Dosada05/racket-tournament-system/handlers"
	"github.com/Dosada05/racket-tournament-system/metrics"
	"github.com/Dosada05/racket-tournament-system/middleware"
	"github.com/Dosada05/racket-tournament-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	sportHandler *handlers.SportHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Handle("/metrics", metrics.Handler())

	router.Post("/auth/token", authHandler.IssueToken)

	router.Route("/sports", func(r chi.Router) {
		// Публичные маршруты: реестр видов спорта и табло
		r.Get("/", sportHandler.GetAllSports)
		r.Get("/{sportID}", sportHandler.GetSportByID)
		r.Get("/{sportID}/matches", matchHandler.ListMatchesBySport)
		r.Get("/{sportID}/dashboard", matchHandler.GetSportDashboard)

		// Управление реестром доступно только администратору
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(string(models.RoleAdmin)))

			r.Post("/", sportHandler.CreateSport)
			r.Put("/{sportID}", sportHandler.UpdateSport)
			r.Delete("/{sportID}", sportHandler.DeleteSport)
			r.Post("/{sportID}/logo", sportHandler.UploadSportLogo)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatchByID)

		// Создание матчей и подача очков: судья или администратор
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(string(models.RoleAdmin), string(models.RoleReferee)))

			r.Post("/", matchHandler.CreateMatch)
			r.Post("/{matchID}/points", matchHandler.SubmitPoint)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeWs)
}
