// Package model defines the core data structures of the application.
//
// WHY A SEPARATE MODEL PACKAGE?
// Models are shared by every layer — handlers decode into them, services
// validate them, repositories persist them. Putting them in their own package
// avoids import cycles (repository importing handler or vice versa).
//
// Models contain NO behaviour beyond the data itself: no SQL, no JSON
// handling beyond struct tags, no business rules. Those live in the
// repository, handler, and service layers respectively.
package model

import "time"

// User is a registered account identified by a unique email address.
//
// SECURITY NOTE:
// PasswordHash holds the bcrypt hash, never the plaintext password.
// The `json:"-"` tag excludes it from EVERY JSON response — even if a
// handler accidentally encodes a full User, the hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
