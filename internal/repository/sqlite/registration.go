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

// compile-time check that *DB implements repository.RegistrationRepository
var _ repository.RegistrationRepository = (*DB)(nil)

// CreateRegistration inserts a new registration row.
//
// CONCURRENCY:
// The UNIQUE(user_id, event_id) index serializes concurrent attempts for the
// same pair. When two requests race, the database accepts exactly one INSERT;
// the loser's constraint violation is translated here to
// apperror.ErrDuplicate, which the API reports as "Already registered"
// (400) — never as a generic server error. There is no pre-check SELECT in
// this method on purpose: the constraint is the check.
func (db *DB) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	reg.ID = xid.New().String()
	reg.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO registrations (id, user_id, event_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		reg.ID,
		reg.UserID,
		reg.EventID,
		reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("Already registered")
		}
		return fmt.Errorf("sqlite: inserting registration (user=%s event=%s): %w",
			reg.UserID, reg.EventID, err)
	}

	return nil
}

// GetRegistrationByID retrieves one registration.
// Returns apperror.ErrNotFound for unknown and malformed IDs alike.
func (db *DB) GetRegistrationByID(ctx context.Context, id string) (*model.Registration, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, apperror.NotFound("Registration")
	}

	var reg model.Registration

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, event_id, created_at
		 FROM registrations WHERE id = ?`,
		id,
	).Scan(
		&reg.ID,
		&reg.UserID,
		&reg.EventID,
		&reg.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Registration")
		}
		return nil, fmt.Errorf("sqlite: getting registration %s: %w", id, err)
	}

	return &reg, nil
}

// ListRegistrationsByUser returns the user's registrations joined with their
// events, newest registration first.
//
// JOIN INSTEAD OF N+1:
// One query returns the registration and its event's title/description/date
// together. Fetching each event separately per registration would cost a
// round trip per row for no benefit.
func (db *DB) ListRegistrationsByUser(ctx context.Context, userID string) ([]model.RegistrationWithEvent, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.event_id, r.created_at,
		        e.id, e.title, e.description, e.date, e.created_at
		 FROM registrations r
		 JOIN events e ON e.id = r.event_id
		 WHERE r.user_id = ?
		 ORDER BY r.created_at DESC, r.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing registrations for user %s: %w", userID, err)
	}
	defer rows.Close()

	regs := []model.RegistrationWithEvent{}
	for rows.Next() {
		var rw model.RegistrationWithEvent
		if err := rows.Scan(
			&rw.ID,
			&rw.UserID,
			&rw.EventID,
			&rw.CreatedAt,
			&rw.Event.ID,
			&rw.Event.Title,
			&rw.Event.Description,
			&rw.Event.Date,
			&rw.Event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning registration row: %w", err)
		}
		regs = append(regs, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating registration rows: %w", err)
	}

	return regs, nil
}

// DeleteRegistration removes a registration by ID.
// Returns apperror.ErrNotFound if nothing was deleted — the caller can rely
// on a nil return meaning the row existed and is now gone.
func (db *DB) DeleteRegistration(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM registrations WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting registration %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete result for %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("Registration")
	}

	return nil
}
