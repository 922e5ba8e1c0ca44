// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
// In a well-structured Go web app, code is organised into three layers:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// WHY A SEPARATE SERVICE LAYER?
// Without a service layer, handlers do everything: parse HTTP, validate
// data, call the database, format responses. That couples business rules to
// HTTP and makes them impossible to test without spinning up requests.
//
// THE DEPENDENCY CHAIN:
//
//	server.go creates:  DB → Repository → Service → Handler
//	At runtime:         Handler calls Service calls Repository calls DB
//
// DEPENDENCY INJECTION:
// Each service takes repository INTERFACES, not *sqlite.DB. Tests pass
// hand-written fakes; the storage backend can change without touching this
// package.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/event-registration/internal/apperror"
	"github.com/sakif/event-registration/internal/model"
	"github.com/sakif/event-registration/internal/repository"
)

// EventService exposes the read-only event catalog.
//
// There is deliberately no Create/Update/Delete here: events enter the
// system through the seeding tool only, and the catalog is immutable
// through the API.
type EventService struct {
	events repository.EventRepository
	logger *slog.Logger
}

// NewEventService creates an EventService.
func NewEventService(events repository.EventRepository, logger *slog.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger,
	}
}

// List returns all events ordered by date ascending.
// The ordering is the repository's contract; the service just passes it on.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		s.logger.Error("failed to list events", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing events: %w", err)
	}

	return events, nil
}

// GetByID retrieves a single event.
// Returns apperror.ErrNotFound if the event doesn't exist.
func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "event ID is required")
	}

	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		// NotFound is a normal outcome, not a failure — let it propagate
		// without logging it as an error.
		return nil, err
	}

	return event, nil
}
