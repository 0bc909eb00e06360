package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Head("/api/health", h.health)
		r.Get("/api/health", h.health)
		r.Get("/ws", h.hub.HandleWS)
	})

	// backend notify surface, admin only
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)

		r.Post("/api/notify/user/{userID}", h.notifyUser)
		r.Post("/api/notify/role/{role}", h.notifyRole)
		r.Post("/api/notify/resource/{resourceID}", h.notifyResource)
		r.Post("/api/notify/all", h.notifyAll)
	})

	return router
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
