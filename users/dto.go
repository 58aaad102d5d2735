package users

import "time"

// ProfileResponse is the public view of the authenticated user.
type ProfileResponse struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
}
