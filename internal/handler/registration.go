package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/event-registration/internal/auth"
	"github.com/sakif/event-registration/internal/model"
)

// RegistrationLedger is the slice of service.RegistrationService the handler
// needs.
type RegistrationLedger interface {
	Register(ctx context.Context, userID, eventID string) (*model.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]model.RegistrationWithEvent, error)
	Cancel(ctx context.Context, userID, registrationID string) error
}

// RegistrationHandler manages the caller's event registrations. Every route
// here sits behind auth.RequireAuth — the middleware guarantees a userID in
// the request context before these handlers run.
//
//	POST   /api/events/{eventId}/register
//	GET    /api/events/registrations/my
//	DELETE /api/events/registrations/{registrationId}
type RegistrationHandler struct {
	registrations RegistrationLedger
	logger        *slog.Logger
}

// NewRegistrationHandler creates a RegistrationHandler.
func NewRegistrationHandler(registrations RegistrationLedger, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, logger: logger}
}

// registeredResponse acknowledges a successful registration. The client
// keeps registrationId so it can cancel without re-fetching the list first.
type registeredResponse struct {
	Msg            string `json:"msg"`
	RegistrationID string `json:"registrationId"`
}

// HandleRegister signs the caller up for an event.
//
// HTTP: POST /api/events/{eventId}/register
// AUTH: required
//
// RESPONSES:
//
//	200 {"msg": "Registered successfully", "registrationId": "..."}
//	400 {"msg": "Already registered"}
//	404 {"msg": "Event not found"}
//	401 — handled by the middleware, never reaches here
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't trust route wiring.
		writeJSON(w, http.StatusUnauthorized, MsgResponse{Msg: "No token"})
		return
	}

	eventID := chi.URLParam(r, "eventId")

	reg, err := h.registrations.Register(r.Context(), userID, eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, registeredResponse{
		Msg:            "Registered successfully",
		RegistrationID: reg.ID,
	})
}

// HandleListMine returns the caller's registrations with event details.
//
// HTTP: GET /api/events/registrations/my
// AUTH: required
//
// RESPONSE: 200 with a JSON array sorted by creation time descending, each
// entry embedding its event:
//
//	[{"id": "...", "eventId": "...", "createdAt": "...",
//	  "event": {"title": "...", "description": "...", "date": "..."}}]
func (h *RegistrationHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, MsgResponse{Msg: "No token"})
		return
	}

	regs, err := h.registrations.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, regs)
}

// HandleCancel deletes one of the caller's registrations.
//
// HTTP: DELETE /api/events/registrations/{registrationId}
// AUTH: required
//
// RESPONSES:
//
//	200 {"msg": "Cancelled successfully"}
//	403 {"msg": ...} — registration belongs to a different user
//	404 {"msg": "Registration not found"} — unknown id, or already cancelled
func (h *RegistrationHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, MsgResponse{Msg: "No token"})
		return
	}

	registrationID := chi.URLParam(r, "registrationId")

	if err := h.registrations.Cancel(r.Context(), userID, registrationID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MsgResponse{Msg: "Cancelled successfully"})
}
