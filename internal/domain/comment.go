package domain

import "time"

type Comment struct {
	ID        string    `json:"id" validate:"required"`
	Content   string    `json:"content"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorName is the display name shown next to the comment.
func (c Comment) AuthorName() string {
	if c.User == nil || c.User.DisplayName == "" {
		return "Anonymous"
	}
	return c.User.DisplayName
}
