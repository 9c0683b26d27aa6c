package api

import (
	"net/http"

	"github.com/dom/league-skinset-finder/internal/api/handlers"
	"github.com/dom/league-skinset-finder/internal/api/middleware"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const maxRequestBody = 64 * 1024

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(services.Catalog)
	resolveHandler := handlers.NewResolveHandler(services.Resolve, services.Export)
	shareHandler := handlers.NewShareHandler(services.Share, services.Resolve)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Share, services.Resolve)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.Info)
		r.Get("/catalog/history", catalogHandler.History)
		r.Get("/champions", catalogHandler.Champions)
		r.Get("/skinsets", catalogHandler.Skinsets)

		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(maxRequestBody))

			r.Post("/resolve", resolveHandler.Resolve)
			r.Post("/resolve/export", resolveHandler.Export)
			r.Post("/share", shareHandler.Create)
		})

		r.Route("/share/{token}", func(r chi.Router) {
			r.Get("/", shareHandler.Get)
			r.Get("/results", shareHandler.Results)
			r.Get("/qr.png", shareHandler.QRCode)
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
