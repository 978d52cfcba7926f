// Package live рассылает обновления счёта по WebSocket: одна комната на матч.
package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	MessageScoreUpdated   = "SCORE_UPDATED"
	MessageMatchCompleted = "MATCH_COMPLETED"
)

// ScoreMessage описывает сообщение комнаты матча. EventID позволяет клиенту
// отбрасывать дубли при переподключении.
type ScoreMessage struct {
	Type    string      `json:"type"`
	EventID string      `json:"event_id"`
	MatchID int         `json:"match_id"`
	Payload interface{} `json:"payload"`
}

// NewScoreMessage присваивает сообщению уникальный идентификатор события.
func NewScoreMessage(msgType string, matchID int, payload interface{}) ScoreMessage {
	return ScoreMessage{
		Type:    msgType,
		EventID: uuid.NewString(),
		MatchID: matchID,
		Payload: payload,
	}
}

// MatchRoom возвращает идентификатор комнаты матча.
func MatchRoom(matchID int) string {
	return fmt.Sprintf("match_%d", matchID)
}

type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.logger.Info("live client registered",
				slog.String("room", client.Room),
				slog.Int("clients", len(h.rooms[client.Room])))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if roomClients, ok := h.rooms[client.Room]; ok {
				if _, okClient := roomClients[client]; okClient {
					client.closeSend()
					delete(roomClients, client)
					if len(roomClients) == 0 {
						delete(h.rooms, client.Room)
					}
					h.logger.Info("live client unregistered", slog.String("room", client.Room))
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom отправляет сообщение всем клиентам комнаты. Клиенты с
// заполненным буфером пропускаются, чтобы не блокировать рассылку.
func (h *Hub) BroadcastToRoom(roomID string, message ScoreMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal live message",
			slog.String("room", roomID), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		client.trySend(messageBytes)
	}
}
