package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDIsUnique(t *testing.T) {
	g := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.NewID()
		assert.True(t, Valid(id), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, Valid("not-a-uuid"))
	assert.False(t, Valid(""))
}
