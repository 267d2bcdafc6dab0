package models

import "time"

// User is an account record, keyed by username in the datastore.
// PasswordHash holds a bcrypt hash, or the raw password when the hasher
// ran in its degraded plaintext mode.
type User struct {
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}
