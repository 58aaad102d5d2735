// Package messages implements the shared message feed: an append-only,
// timestamp-ordered sequence of messages readable by every
// authenticated user.
package messages

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/user/memberchat/apperror"
)

const (
	// textMaxLength is the maximum message length in characters, not bytes.
	textMaxLength = 5000
)

// Message is a feed entry as stored. Messages are immutable: no update
// or delete path exists.
type Message struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse is the public view of a feed entry; author is the
// username rather than the numeric id.
type MessageResponse struct {
	ID        int64     `json:"id" example:"1"`
	Text      string    `json:"text" example:"hi"`
	Author    string    `json:"author" example:"alice"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// CreateRequest is the payload for POST /messages.
type CreateRequest struct {
	Text string `json:"text" example:"hi"`
}

// ValidateText checks message text bounds: non-empty, at most
// textMaxLength characters.
func ValidateText(text string) error {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return apperror.NewValidationError("message text is required", nil)
	}
	if n > textMaxLength {
		return apperror.NewValidationError(
			fmt.Sprintf("message text must be at most %d characters", textMaxLength), nil)
	}
	return nil
}
