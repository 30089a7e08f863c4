package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hande-app/logwatch/internal/logview"
	ws "github.com/hande-app/logwatch/internal/websocket"
)

// FeedHandler upgrades dashboard connections and streams live-tail
// snapshots to them.
type FeedHandler struct {
	hub  *ws.Hub
	tail *logview.LiveTail
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *ws.Hub, tail *logview.LiveTail) *FeedHandler {
	return &FeedHandler{hub: hub, tail: tail}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client

	// New connections immediately see the current buffer.
	snap := h.tail.Snapshot()
	client.Send <- ws.NewFeedUpdateMessage(snap.Entries)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(h.handleIncomingWSMessage)
	}()

	// Cleanup on disconnect.
	go func() {
		wg.Wait()
		h.hub.Unregister <- client
	}()
}

// handleIncomingWSMessage processes messages received from a websocket
// client. Pausing freezes delivery to that client while the tail keeps
// buffering; resuming delivers the caught-up buffer at once.
func (h *FeedHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}

	switch msg.Action {
	case "pause":
		client.SetPaused(true)
		h.tail.Pause()

	case "resume":
		client.SetPaused(false)
		h.tail.Resume()
		snap := h.tail.Snapshot()
		client.Send <- ws.NewFeedUpdateMessage(snap.Entries)

	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		client.Send <- ws.NewErrorMessage("Unknown action: " + msg.Action)
	}
}
