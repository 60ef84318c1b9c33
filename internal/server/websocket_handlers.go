package server

import (
	"log/slog"

	"comunidad/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// requireWebSocketUpgrade rejects plain HTTP requests on websocket routes.
func requireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ForumWebSocketHandler streams forum events to the connected client until
// either side closes the connection or the server shuts down.
func (s *Server) ForumWebSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client, err := s.forumHub.Register(conn)
		if err != nil {
			middleware.Logger.Warn("rejecting forum websocket", slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
			_ = conn.Close()
			return
		}

		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		go client.WritePump()
		client.ReadPump()
	})
}
