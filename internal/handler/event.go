package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/event-registration/internal/model"
)

// EventCatalog is the slice of service.EventService the handler needs.
type EventCatalog interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// EventHandler serves the read-only event catalog.
//
//	GET /api/events      → all events, date ascending
//	GET /api/events/{id} → one event
//
// Both routes are public — browsing the catalog requires no token.
type EventHandler struct {
	events EventCatalog
	logger *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(events EventCatalog, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

// HandleList returns all events.
//
// HTTP: GET /api/events
//
// RESPONSE: 200 with a JSON array sorted by date ascending; [] when the
// catalog is empty (never null — the repository guarantees a non-nil slice).
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// HandleGetByID returns one event.
//
// HTTP: GET /api/events/{id}
//
// URL PARAMETERS:
// chi.URLParam(r, "id") extracts the {id} segment the router matched.
//
// RESPONSES:
//
//	200 Event
//	404 {"msg": "Event not found"} — unknown or malformed id
func (h *EventHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}
