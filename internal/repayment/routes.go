package repayment

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the repayment API under /api.
func RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/repayments", Calculate)
		r.Post("/sanitize", Sanitize)
	})
}
