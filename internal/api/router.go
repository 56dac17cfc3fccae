// Hitparade - Artists and Hits REST API
// Copyright 2026 P. Milosz (pmilosz)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pmilosz/hitparade

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pmilosz/hitparade/internal/auth"
	"github.com/pmilosz/hitparade/internal/cache"
	"github.com/pmilosz/hitparade/internal/middleware"
)

// loginRateLimit is the route-level cap on login requests, independent
// of the per-IP LoginLimiter inside the handler.
const loginRateLimitRequests = 10

// Router assembles the HTTP handler tree.
type Router struct {
	handler        *Handler
	authMiddleware *auth.Middleware
}

// NewRouter creates a router around the given handler and auth
// middleware.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware) *Router {
	return &Router{
		handler:        handler,
		authMiddleware: authMiddleware,
	}
}

// Setup builds the chi handler tree: global middleware, public reads
// (list endpoints behind the response cache), admin-only writes, login,
// health, and the Prometheus endpoint.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()
	cfg := rt.handler.cfg

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	rateLimit := rt.rateLimit(cfg.Security.RateLimitReqs)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimit)

		r.Route("/artists", func(r chi.Router) {
			r.Get("/", rt.handler.cachedList(cache.ArtistList, rt.handler.ListArtists))
			r.Get("/{id}/", rt.handler.GetArtist)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Post("/", rt.handler.CreateArtist)
				r.Put("/{id}/", rt.handler.UpdateArtist)
				r.Patch("/{id}/", rt.handler.UpdateArtist)
				r.Delete("/{id}/", rt.handler.DeleteArtist)
			})
		})

		r.Route("/hits", func(r chi.Router) {
			r.Get("/", rt.handler.cachedList(cache.HitList, rt.handler.ListHits))
			r.Get("/by-artist/", rt.handler.cachedList(cache.ArtistsByHits, rt.handler.ArtistsByHits))
			r.Get("/{id}/", rt.handler.GetHit)

			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Post("/", rt.handler.CreateHit)
				r.Put("/{id}/", rt.handler.UpdateHit)
				r.Patch("/{id}/", rt.handler.UpdateHit)
				r.Delete("/{id}/", rt.handler.DeleteHit)
			})
		})

		r.With(rt.loginRateLimit()).Post("/auth/login", rt.handler.Login)

		r.Get("/health", rt.handler.Health)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// rateLimit returns the default per-IP limiter, or a no-op when
// disabled for CI runs.
func (rt *Router) rateLimit(requests int) func(http.Handler) http.Handler {
	if rt.handler.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByRealIP(requests, rt.handler.cfg.Security.RateLimitWindow)
}

// loginRateLimit is stricter than the global limit to slow brute force
// attempts before they reach the credential check.
func (rt *Router) loginRateLimit() func(http.Handler) http.Handler {
	if rt.handler.cfg.Security.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByRealIP(loginRateLimitRequests, rt.handler.cfg.Security.RateLimitWindow)
}
