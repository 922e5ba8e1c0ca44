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

// RegistrationService implements the registration ledger: who is signed up
// for what, with at most one registration per (user, event) pair.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	events        repository.EventRepository
	logger        *slog.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(
	registrations repository.RegistrationRepository,
	events repository.EventRepository,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		logger:        logger,
	}
}

// Register signs userID up for eventID.
//
// OUTCOMES:
//   - event doesn't exist        → apperror.ErrNotFound
//   - pair already registered    → apperror.ErrDuplicate ("Already registered")
//   - otherwise                  → the new Registration
//
// RACE HANDLING:
// The existence check and the insert are NOT one atomic step, and don't need
// to be: the repository's UNIQUE(user_id, event_id) constraint decides the
// winner when two identical requests race. Whichever insert runs second gets
// ErrDuplicate — the same outcome as a sequential double-registration.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID string) (*model.Registration, error) {
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, apperror.ValidationFailed("eventId", "event ID is required")
	}

	// Verify the event exists first so an unknown event reads as 404,
	// not as a foreign-key failure.
	if _, err := s.events.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	reg := &model.Registration{
		UserID:  userID,
		EventID: eventID,
	}

	if err := s.registrations.CreateRegistration(ctx, reg); err != nil {
		// ErrDuplicate passes through untouched; anything else gets context.
		return nil, fmt.Errorf("registering user %s for event %s: %w", userID, eventID, err)
	}

	s.logger.Info("registration created",
		slog.String("registrationID", reg.ID),
		slog.String("userID", userID),
		slog.String("eventID", eventID),
	)

	return reg, nil
}

// ListByUser returns the user's registrations with event details embedded,
// newest first.
func (s *RegistrationService) ListByUser(ctx context.Context, userID string) ([]model.RegistrationWithEvent, error) {
	if userID == "" {
		return nil, apperror.ValidationFailed("userId", "user ID is required")
	}

	regs, err := s.registrations.ListRegistrationsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list registrations",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing registrations for user %s: %w", userID, err)
	}

	return regs, nil
}

// Cancel deletes a registration on behalf of userID.
//
// OWNERSHIP CHECK:
// The registration is fetched first and its UserID compared to the caller.
// A registration owned by someone else is apperror.ErrForbidden — NOT
// NotFound — so the owner of a leaked registration ID learns nothing, but a
// legitimate client gets an accurate status.
func (s *RegistrationService) Cancel(ctx context.Context, userID, registrationID string) error {
	if userID == "" {
		return apperror.ValidationFailed("userId", "user ID is required")
	}
	registrationID = strings.TrimSpace(registrationID)
	if registrationID == "" {
		return apperror.ValidationFailed("registrationId", "registration ID is required")
	}

	reg, err := s.registrations.GetRegistrationByID(ctx, registrationID)
	if err != nil {
		return err
	}

	if reg.UserID != userID {
		s.logger.Warn("cancel attempt on foreign registration",
			slog.String("registrationID", registrationID),
			slog.String("ownerID", reg.UserID),
			slog.String("callerID", userID),
		)
		return apperror.Forbidden("You may only cancel your own registrations")
	}

	if err := s.registrations.DeleteRegistration(ctx, registrationID); err != nil {
		// A concurrent cancel may have removed the row between our fetch and
		// the delete; NotFound is still the right answer for the caller.
		return err
	}

	s.logger.Info("registration cancelled",
		slog.String("registrationID", registrationID),
		slog.String("userID", userID),
	)

	return nil
}
