/*
server.go - HTTP router and middleware configuration

ROUTES:
  GET  /api/household                     Household and assets
  GET  /api/scenarios                     Scenario names
  GET  /api/scenarios/{name}              Scenario summary (projection + successions)
  GET  /api/pensions/{adult}/{year}       Both regimes for one adult and year
  GET  /api/projection                    Yearly household projection
  GET  /api/successions/{adult}           Death of one adult
  POST /api/compare                       Base scenario against templates
  POST /api/transform                     Base scenario with ad hoc transforms

Every read endpoint takes an optional ?scenario= query parameter.
No authentication: the server is meant to run on localhost.
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. Requests are
// logged through logger; a nil logger uses slog's default.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/household", h.GetHousehold)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/{name}", h.GetScenario)
		})

		r.Get("/pensions/{adult}/{year}", h.GetPension)
		r.Get("/projection", h.GetProjection)
		r.Get("/successions/{adult}", h.GetSuccession)

		r.Post("/compare", h.Compare)
		r.Post("/transform", h.Transform)
	})

	return r
}
