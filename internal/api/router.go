// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the scenario-manager HTTP surface.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/", h.CreateScenario)

			r.Route("/{scenarioID}", func(r chi.Router) {
				r.Get("/", h.GetScenario)
				r.Put("/", h.UpdateScenario)
				r.Delete("/", h.DeleteScenario)

				r.Post("/score", h.TriggerScoring)

				r.Route("/attachments", func(r chi.Router) {
					r.Post("/", h.AddAttachment)
					r.Delete("/", h.RemoveAttachment)
				})

				r.Route("/areas/{area}/criteria", func(r chi.Router) {
					r.Post("/", h.AddCriterion)
					r.Post("/import", h.ImportCriteria)

					r.Route("/{criterionID}", func(r chi.Router) {
						r.Put("/", h.UpdateCriterion)
						r.Put("/score", h.SetScore)
						r.Delete("/", h.DeleteCriterion)
					})
				})
			})
		})

		r.Get("/weights", h.GetWeights)
		r.Put("/weights", h.SetWeights)
		r.Get("/comparison", h.GetComparison)
	})

	return r
}
