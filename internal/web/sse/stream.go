package sse

import (
	"net/http"
	"time"

	"github.com/mcoot/connectfour/internal/hub"
)

// Time between keepalive comments
const pingPeriod = 30 * time.Second

// ServeSSE streams the hub's messages to one browser until it disconnects
// or the hub closes
func ServeSSE(w http.ResponseWriter, r *http.Request, h *hub.Hub, label string) {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := hub.NewClient(label)
	if !h.Register(client) {
		http.Error(w, "Stream closed", http.StatusGone)
		return
	}
	defer h.Unregister(client)

	// Reconnect delay, then the initial connection event
	_, _ = w.Write([]byte("retry: 3000\n\n"))
	_, _ = w.Write(formatSSEMessage(EventConnected, `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.Messages():
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
