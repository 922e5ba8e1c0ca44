package model

import "time"

// Event is a catalog entry users can register for.
//
// Events are created only by the seeding tool (cmd/seed) and are immutable
// through the HTTP API — there is no create/update/delete endpoint for them.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
