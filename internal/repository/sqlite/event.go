package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/event-registration/internal/apperror"
	"github.com/sakif/event-registration/internal/model"
	"github.com/sakif/event-registration/internal/repository"
)

// compile-time check that *DB implements repository.EventRepository
var _ repository.EventRepository = (*DB)(nil)

// CreateEvent inserts a new event row, generating its ID and CreatedAt.
// Only the seeding tool and tests call this; the HTTP API never does.
func (db *DB) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = xid.New().String()
	event.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO events (id, title, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting event %q: %w", event.Title, err)
	}

	return nil
}

// ListEvents returns every event ordered by date ascending.
//
// FULL SCAN, NO PAGINATION:
// The catalog is small and seeded out-of-band, so the listing is a plain
// ORDER BY over the whole table. The idx_events_date index keeps the sort
// cheap regardless of insertion order.
func (db *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, date, created_at
		 FROM events ORDER BY date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events: %w", err)
	}
	// rows MUST be closed — otherwise the connection leaks back into the
	// pool holding an open cursor.
	defer rows.Close()

	// Initialise to an empty slice (not nil) so the JSON encoding is []
	// rather than null when there are no events.
	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating event rows: %w", err)
	}

	return events, nil
}

// GetEventByID retrieves one event.
// Returns apperror.ErrNotFound for unknown and malformed IDs alike.
func (db *DB) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, apperror.NotFound("Event")
	}

	var e model.Event

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, date, created_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Event")
		}
		return nil, fmt.Errorf("sqlite: getting event %s: %w", id, err)
	}

	return &e, nil
}
