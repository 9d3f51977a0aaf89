package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/worldcup-system/simulation"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin.
		return true
	},
}

type WebSocketHandler struct {
	hub    *simulation.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *simulation.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// ServeWs подключает клиента к live-трансляции турнира.
// Клиент подключается к /ws/tournaments/{tournamentID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		http.Error(w, "Invalid tournamentID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP-ошибку клиенту.
		h.logger.Error("failed to upgrade websocket connection",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	roomID := simulation.TournamentRoom(tournamentID)

	client := &simulation.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client registered", slog.String("room", roomID))
}
