// Package seed loads demo data: a handful of events and one test user.
//
// Events only enter the system through this package (or direct DB access) —
// the HTTP API has no event-creation endpoint. Run it via cmd/seed against a
// fresh database; tests reuse it to get a known catalog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/event-registration/internal/apperror"
	"github.com/sakif/event-registration/internal/auth"
	"github.com/sakif/event-registration/internal/model"
	"github.com/sakif/event-registration/internal/repository"
)

// TestUserEmail and TestUserPassword are the demo login credentials.
const (
	TestUserEmail    = "user@gmail.com"
	TestUserPassword = "123"
)

// Events returns the demo event catalog. A fresh slice every call — callers
// may mutate the result (the repository writes IDs back into it).
func Events() []model.Event {
	return []model.Event{
		{
			Title:       "Tech Conference 2025",
			Description: "Annual technology conference featuring the latest innovations",
			Date:        time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Web Development Workshop",
			Description: "Hands-on workshop for web developers",
			Date:        time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "AI & Machine Learning Summit",
			Description: "Explore the future of AI and machine learning",
			Date:        time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			Title:       "Startup Networking Event",
			Description: "Connect with entrepreneurs and investors",
			Date:        time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Run inserts the demo events and the test user.
//
// An already-existing test user is fine (re-running against the same
// database); everything else is an error. Events are inserted
// unconditionally — run against a fresh database to avoid duplicates in the
// catalog listing.
func Run(
	ctx context.Context,
	users repository.UserRepository,
	events repository.EventRepository,
	passwords *auth.PasswordService,
) error {
	hash, err := passwords.Hash(TestUserPassword)
	if err != nil {
		return fmt.Errorf("seed: hashing test password: %w", err)
	}

	user := &model.User{
		Email:        TestUserEmail,
		PasswordHash: hash,
	}
	if err := users.CreateUser(ctx, user); err != nil && !errors.Is(err, apperror.ErrDuplicate) {
		return fmt.Errorf("seed: creating test user: %w", err)
	}

	for _, e := range Events() {
		event := e
		if err := events.CreateEvent(ctx, &event); err != nil {
			return fmt.Errorf("seed: creating event %q: %w", event.Title, err)
		}
	}

	return nil
}
