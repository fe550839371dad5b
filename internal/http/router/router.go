package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"entregas/internal/http/handlers"
)

// Deps collects everything the router needs.
type Deps struct {
	Base         *handlers.Handlers
	Auth         *handlers.AuthHandler
	Couriers     *handlers.CourierHandler
	Deliveries   *handlers.DeliveryHandler
	Authenticate func(http.Handler) http.Handler
	Observe      func(http.Handler) http.Handler
	UploadsDir   string
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if d.Observe != nil {
		r.Use(d.Observe)
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", d.Auth.Login)

	if d.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(d.Authenticate)

		r.Get("/auth/me", d.Auth.Me)

		r.Get("/couriers", d.Couriers.List)
		r.Post("/couriers", d.Couriers.Create)
		r.Put("/couriers/{id}/companies", d.Couriers.SetCompanies)

		r.Post("/deliveries/upload", d.Deliveries.Upload)
		r.Get("/deliveries", d.Deliveries.List)
		r.Patch("/deliveries/{id}/status", d.Deliveries.Transition)

		r.Get("/stats/fortnight", d.Deliveries.Stats)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
