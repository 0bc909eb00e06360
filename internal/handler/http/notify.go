package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anikeenko/psysync/internal/logger"
)

// notifyRequest is the body accepted by every notify endpoint: an event
// name plus an opaque data blob forwarded verbatim to room members.
type notifyRequest struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (h *Handler) notifyUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNotify(w, r)
	if !ok {
		return
	}

	h.hub.SendToUser(chi.URLParam(r, "userID"), req.Event, req.Data)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) notifyRole(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNotify(w, r)
	if !ok {
		return
	}

	h.hub.SendToRole(chi.URLParam(r, "role"), req.Event, req.Data)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) notifyResource(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNotify(w, r)
	if !ok {
		return
	}

	h.hub.SendToResource(chi.URLParam(r, "resourceID"), req.Event, req.Data)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) notifyAll(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNotify(w, r)
	if !ok {
		return
	}

	h.hub.BroadcastAll(req.Event, req.Data)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) decodeNotify(w http.ResponseWriter, r *http.Request) (notifyRequest, bool) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Msg("malformed notify request body")
		http.Error(w, ErrMalformedBody.Error(), http.StatusBadRequest)
		return notifyRequest{}, false
	}
	if req.Event == "" {
		http.Error(w, ErrMissingEvent.Error(), http.StatusBadRequest)
		return notifyRequest{}, false
	}

	return req, true
}
