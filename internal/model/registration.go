package model

import "time"

// Registration is the join record between a User and an Event.
//
// INVARIANT: at most one Registration exists per (UserID, EventID) pair.
// The sqlite repository enforces this with a UNIQUE index, which also
// serializes concurrent registration attempts for the same pair — the
// losing writer gets a constraint violation that the repository translates
// to a duplicate-registration error.
//
// OWNERSHIP: a Registration belongs to the user who created it. Only that
// user may cancel it; the service layer enforces this before deleting.
type Registration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	EventID   string    `json:"eventId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegistrationWithEvent is a Registration joined with its Event's details.
// Returned by the "my registrations" listing so the client can render the
// event title/date without a second round trip per row.
type RegistrationWithEvent struct {
	Registration
	Event Event `json:"event"`
}
