package server

import (
	"encoding/json"
	"log"

	"bayaaz/internal/middleware"
	"bayaaz/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for real-time reader notifications.
// The channel is one-way: publish events flow from the server to the client.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		welcome := notifications.Event{
			Type:    "connected",
			Payload: map[string]any{"user_id": userID},
		}
		if welcomeJSON, err := json.Marshal(welcome); err == nil {
			client.TrySend(welcomeJSON)
		}

		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking). Inbound
		// frames are discarded, it only services pings and detects close.
		client.ReadPump()
	})
}
