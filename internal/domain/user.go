package domain

import "time"

// User represents a registered account that owns todos.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
