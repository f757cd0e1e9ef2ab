package auth

import "time"

// User is an application account. Password hashes are bcrypt.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
