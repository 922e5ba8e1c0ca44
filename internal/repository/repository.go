// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (sqlite).
//
// Services receive these interfaces, never a concrete *sql.DB — tests swap
// in hand-written fakes and the storage backend can change without touching
// business logic.
package repository

import (
	"context"

	"github.com/sakif/event-registration/internal/model"
)

// UserRepository stores account credentials.
type UserRepository interface {
	// CreateUser inserts a new user. The email must be unique; a duplicate
	// yields an error matching apperror.ErrDuplicate.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail returns the user with the given (lowercased) email,
	// or an error matching apperror.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByID returns the user with the given internal ID,
	// or an error matching apperror.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// EventRepository stores the event catalog.
type EventRepository interface {
	// CreateEvent inserts a new event. Only the seeding tool and tests call
	// this — events are immutable through the HTTP API.
	CreateEvent(ctx context.Context, event *model.Event) error

	// ListEvents returns every event ordered by date ascending.
	ListEvents(ctx context.Context) ([]model.Event, error)

	// GetEventByID returns one event or an error matching apperror.ErrNotFound.
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
}

// RegistrationRepository stores the user↔event join records.
type RegistrationRepository interface {
	// CreateRegistration inserts a new registration. The (UserID, EventID)
	// pair must be unique; a duplicate — including the loser of a concurrent
	// race — yields an error matching apperror.ErrDuplicate.
	CreateRegistration(ctx context.Context, reg *model.Registration) error

	// GetRegistrationByID returns one registration or an error matching
	// apperror.ErrNotFound.
	GetRegistrationByID(ctx context.Context, id string) (*model.Registration, error)

	// ListRegistrationsByUser returns the user's registrations joined with
	// their events, ordered by creation time descending (newest first).
	ListRegistrationsByUser(ctx context.Context, userID string) ([]model.RegistrationWithEvent, error)

	// DeleteRegistration removes a registration by ID. Returns an error
	// matching apperror.ErrNotFound if no row was deleted.
	DeleteRegistration(ctx context.Context, id string) error
}
