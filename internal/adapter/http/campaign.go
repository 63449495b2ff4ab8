package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hitpulse/internal/core/domain"
)

type userKey struct{}

// requireUser rejects requests without a user id and stores it in the
// request context.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserHeader)
		if userID == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing " + UserHeader + " header"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, userID)))
	})
}

func userFrom(r *http.Request) string {
	s, _ := r.Context().Value(userKey{}).(string)
	return s
}

type errorBody struct {
	Error string `json:"error"`
}

// handleCreateCampaign decodes a domain.CampaignInput and stores a new
// campaign. Validation failures produce HTTP 400.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in domain.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON"})
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), userFrom(r), in)
	if err != nil {
		h.writeError(w, "create campaign error", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCampaigns(r.Context(), userFrom(r))
	if err != nil {
		h.writeError(w, "list campaigns error", err)
		return
	}
	if list == nil {
		list = []domain.Campaign{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), userFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get campaign error", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleStartCampaign activates a campaign. Starting an active campaign
// returns it unchanged; a completed campaign yields HTTP 409.
func (h *Handler) handleStartCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.StartCampaign(r.Context(), userFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "start campaign error", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleStopCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.StopCampaign(r.Context(), userFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "stop campaign error", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCampaign(r.Context(), userFrom(r), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, "delete campaign error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors to status codes. Anything unknown is
// logged and reported as HTTP 500 without details.
func (h *Handler) writeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCampaign):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrCampaignNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrCampaignCompleted):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		h.logger.Error(msg, slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
