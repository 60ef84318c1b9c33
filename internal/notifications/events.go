// Package notifications fans forum activity out to websocket clients through Redis pub/sub.
package notifications

import (
	"encoding/json"
	"fmt"
)

// Forum event types.
const (
	EventPostCreated     = "post_created"
	EventPostDeleted     = "post_deleted"
	EventReplyCreated    = "reply_created"
	EventFavoriteToggled = "favorite_toggled"
)

// ForumEvent is the envelope delivered to realtime clients.
type ForumEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Encode returns the wire form of the event.
func (e ForumEvent) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	return string(b), nil
}
