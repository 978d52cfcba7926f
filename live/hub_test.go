package live

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRoom(t *testing.T) {
	assert.Equal(t, "match_42", MatchRoom(42))
}

func TestNewScoreMessage(t *testing.T) {
	msg := NewScoreMessage(MessageScoreUpdated, 7, map[string]int{"points": 1})
	assert.Equal(t, MessageScoreUpdated, msg.Type)
	assert.Equal(t, 7, msg.MatchID)
	assert.NotEmpty(t, msg.EventID)

	other := NewScoreMessage(MessageScoreUpdated, 7, nil)
	assert.NotEqual(t, msg.EventID, other.EventID)
}

func TestBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Рассылка в пустую комнату не должна паниковать и что-либо менять.
	assert.NotPanics(t, func() {
		hub.BroadcastToRoom(MatchRoom(1), NewScoreMessage(MessageScoreUpdated, 1, nil))
	})
}
