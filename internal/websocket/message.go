package websocket

import (
	"encoding/json"

	"github.com/hande-app/logwatch/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewFeedUpdateMessage encodes a live-tail snapshot for broadcast.
func NewFeedUpdateMessage(entries []models.LogEntry) []byte {
	msg := Message{
		Action: "feed_update",
		Payload: map[string]interface{}{
			"entries": entries,
			"count":   len(entries),
		},
	}
	data, _ := json.Marshal(msg)
	return data
}

// NewErrorMessage encodes an error for a single client.
func NewErrorMessage(text string) []byte {
	data, _ := json.Marshal(Message{Action: "error", Payload: map[string]string{"message": text}})
	return data
}
