package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/fast-orienteering/docs" // swagger spec
	"github.com/Dosada05/fast-orienteering/handlers"
	"github.com/Dosada05/fast-orienteering/middleware"
)

type Handlers struct {
	Access     *handlers.AccessHandler
	Race       *handlers.RaceHandler
	Checkpoint *handlers.CheckpointHandler
	Export     *handlers.ExportHandler
	WebSocket  *handlers.WebSocketHandler
	System     *handlers.SystemHandler
}

type Options struct {
	AllowedOrigins []string
	Tokens         middleware.TokenParser
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.System.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/race", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.System.Version)

		// Участники
		r.Get("/race", h.Race.GetRace)
		r.Get("/race/checkpoints", h.Checkpoint.ListPublicCheckpoints)

		r.Post("/admin/access", h.Access.RequestAccess)

		// Организатор
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOrganizer(opts.Tokens))

			r.Post("/admin/race", h.Race.CreateRace)
			r.Delete("/admin/race", h.Race.DeleteRace)

			r.Get("/admin/checkpoints", h.Checkpoint.ListCheckpoints)
			r.Post("/admin/checkpoints", h.Checkpoint.AddCheckpoint)
			r.Get("/admin/checkpoints/{checkpointID}", h.Checkpoint.GetCheckpoint)

			r.Get("/admin/export", h.Export.DownloadExport)
			r.Post("/admin/export", h.Export.ExportEvent)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
