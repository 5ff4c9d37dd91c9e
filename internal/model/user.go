// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain values with JSON and
// db tags, no behaviour attached. All business rules live in the service
// layer; all persistence lives in the repository layer.
package model

import "time"

// User represents a registered account.
//
// Username is unique and immutable after registration — it is the public
// handle other users follow and the identity baked into session tokens.
// Name is the display name shown in follower/following lists.
//
// PasswordHash is the bcrypt hash of the user's password. It is never
// serialized to JSON (note the "-" tag) — it exists only for the login
// comparison, and the hash already embeds its own salt and cost.
type User struct {
	ID           string    `json:"id"       db:"id"`
	Username     string    `json:"username" db:"username"`
	Name         string    `json:"name"     db:"name"`
	PasswordHash string    `json:"-"        db:"password_hash"`
	Gender       string    `json:"gender"   db:"gender"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
