package server

import (
	"context"
	"log/slog"

	"comunidad/internal/middleware"
	"comunidad/internal/notifications"
)

// publishForumEvent fans an event out to websocket clients. With Redis the
// event goes through pub/sub, and this instance's hub receives it from its own
// subscription like every other instance. Without Redis it is delivered to the
// local hub directly. Failures are logged and never fail the request.
func (s *Server) publishForumEvent(ctx context.Context, eventType string, payload interface{}) {
	event := notifications.ForumEvent{Type: eventType, Payload: payload}

	if s.notifier.Enabled() {
		if err := s.notifier.PublishForumEvent(context.WithoutCancel(ctx), event); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish forum event",
				slog.String("event", eventType),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	message, err := event.Encode()
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to encode forum event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	s.forumHub.Deliver(message)
}
