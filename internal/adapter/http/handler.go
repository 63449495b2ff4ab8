package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hitpulse/internal/core/port"
)

// UserHeader carries the caller's user id. Authentication happens upstream;
// this service trusts the header.
const UserHeader = "X-User-ID"

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the campaign use case and a logger for structured logging.
// Routes are registered on a chi.Router for convenient method handling.
type Handler struct {
	svc     port.CampaignUseCase
	logger  *slog.Logger
	router  chi.Router
	metrics http.Handler
}

// NewHandler creates a handler with all routes configured. metrics may be
// nil, in which case /metrics is not served.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger, metrics http.Handler) *Handler {
	h := &Handler{svc: svc, logger: logger, metrics: metrics}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/", h.handleCreateCampaign)
		r.Get("/", h.handleListCampaigns)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Delete("/", h.handleDeleteCampaign)
			r.Post("/start", h.handleStartCampaign)
			r.Post("/stop", h.handleStopCampaign)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
