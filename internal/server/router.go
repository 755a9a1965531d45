package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mortgage-calculator/internal/handlers"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/render"
	"mortgage-calculator/internal/repayment"
	"mortgage-calculator/internal/web"
)

func NewRouter(page *web.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	r.Handle("/assets/*", http.StripPrefix("/assets/", render.Assets()))

	repayment.RegisterRoutes(r)
	page.RegisterRoutes(r)

	return r
}
