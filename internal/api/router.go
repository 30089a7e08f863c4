package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hande-app/logwatch/internal/api/handlers"
	"github.com/hande-app/logwatch/internal/auth"
	"github.com/hande-app/logwatch/internal/logview"
	"github.com/hande-app/logwatch/internal/monitoring"
	"github.com/hande-app/logwatch/internal/services"
	"github.com/hande-app/logwatch/internal/websocket"
)

// RouterDeps bundles everything the router wires into handlers.
type RouterDeps struct {
	Hub           *websocket.Hub
	Tail          *logview.LiveTail
	Backend       logview.Backend
	StatsReader   *logview.StatsReader
	Exporter      *logview.Exporter
	EventService  services.EventServiceProvider
	StatsCache    *monitoring.StatsRefresher
	FeedWindow    int
	AllowedOrigin string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the dashboard origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	logHandler := handlers.NewLogHandler(deps.Backend, deps.StatsReader, deps.Exporter, deps.EventService, deps.StatsCache, deps.FeedWindow)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	feedHandler := handlers.NewFeedHandler(deps.Hub, deps.Tail)
	healthHandler := handlers.NewHealthHandler()

	r.Get("/healthz", healthHandler.Get)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.JWTMiddleware())

		// WebSocket live activity feed
		r.Get("/ws/feed", feedHandler.Serve)

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", logHandler.GetLogs)
			r.Get("/stats", logHandler.GetStats)
			r.Post("/export", logHandler.Export)
		})

		r.Get("/events/recent", eventHandler.GetRecent)
	})

	return r
}
