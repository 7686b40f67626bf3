package domain

import "time"

// Storage limits for todo fields, counted in characters.
const (
	TodoTitleMaxLen   = 80
	TodoContentMaxLen = 1200
)

// Todo is a single item on a user's list.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	Complete    bool
	CreatedDate time.Time
}
