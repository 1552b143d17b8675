package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/processflow/server/internal/utils"
	"github.com/processflow/server/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(httprate.LimitByIP(h.cfg.RateLimit, h.cfg.RateLimitWindow))

	router.Get("/", h.status)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/login", h.login)
		r.Post("/api/register", h.register)
	})

	// routes behind the auth guard
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/verify", h.verify)
		r.Post("/api/logout", h.logout)
		r.Put("/api/change-password", h.changePassword)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, models.ErrorResponse{Error: "route not found"}, http.StatusNotFound)
	})

	return router
}
