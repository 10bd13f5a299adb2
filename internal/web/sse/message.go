package sse

import (
	"strings"

	"github.com/mcoot/connectfour/internal/hub"
)

// Event names pushed to the game page
const (
	EventConnected   = "connected"
	EventBoardUpdate = "board-update"
	EventRematch     = "rematch"
)

// BroadcastEvent sends a named SSE event to every client of h
func BroadcastEvent(h *hub.Hub, eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}

// formatSSEMessage formats an SSE message with event name and data
// Multi-line data gets a "data: " prefix on each line
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on newlines, dropping carriage returns and a single
// trailing newline
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
