package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/racket-tournament-system/live"
	"github.com/Dosada05/racket-tournament-system/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO(origin): сузить до доменов табло перед выкаткой наружу.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	matchService services.MatchService
	logger       *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, ms services.MatchService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		matchService: ms,
		logger:       logger,
	}
}

// ServeWs подключает клиента к комнате матча: /ws/matches/{matchID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Комнату открываем только для существующего матча.
	if _, err := h.matchService.GetMatchByID(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправил HTTP-ошибку клиенту.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, live.MatchRoom(matchID), h.logger)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
