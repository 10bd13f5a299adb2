package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectfour/internal/api/request"
)

func TestParseSeats(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		want  []request.Player
	}{
		{name: "none", specs: nil, want: nil},
		{name: "name only", specs: []string{"Alice"}, want: []request.Player{{Name: "Alice"}}},
		{name: "named color", specs: []string{"Alice:yellow"}, want: []request.Player{{Name: "Alice", Color: "yellow"}}},
		{name: "hex color", specs: []string{"Bob:#123456"}, want: []request.Player{{Name: "Bob", Hex: "#123456"}}},
		{name: "color only", specs: []string{":blue"}, want: []request.Player{{Color: "blue"}}},
		{
			name:  "several",
			specs: []string{" Alice : red ", "Bob"},
			want:  []request.Player{{Name: "Alice", Color: "red"}, {Name: "Bob"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeats(tt.specs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeatsRejectsEmpty(t *testing.T) {
	_, err := parseSeats([]string{"Alice", ""})
	assert.Error(t, err)
}

func TestWebSocketURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/x", (&Config{ServerURL: "http://localhost:8080/"}).WebSocketURL("/x"))
	assert.Equal(t, "wss://example.com/x", (&Config{ServerURL: "https://example.com"}).WebSocketURL("/x"))
}
