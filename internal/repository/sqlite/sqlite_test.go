package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/event-registration/internal/model"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// Each test gets its own database, so tests never see each other's rows and
// can run in parallel.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(\":memory:\") error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	return db
}

// mustCreateUser inserts a user and fails the test on error.
func mustCreateUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()

	u := &model.User{Email: email, PasswordHash: "$2a$04$fakehashforrepotests"}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%q) error = %v", email, err)
	}
	return u
}

// mustCreateEvent inserts an event and fails the test on error.
func mustCreateEvent(t *testing.T, db *DB, title string, date time.Time) *model.Event {
	t.Helper()

	e := &model.Event{Title: title, Description: "test event", Date: date}
	if err := db.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("CreateEvent(%q) error = %v", title, err)
	}
	return e
}
