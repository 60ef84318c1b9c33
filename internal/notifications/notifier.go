package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"comunidad/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// ForumChannel is the Redis channel carrying forum events between API instances.
const ForumChannel = "forum:events"

// Notifier publishes forum events into Redis and subscribes to them.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier binds the forum channel to rdb. A nil rdb turns every call into
// a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Enabled reports whether events travel through Redis.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

// PublishForumEvent sends event to every subscribed instance.
func (n *Notifier) PublishForumEvent(ctx context.Context, event ForumEvent) error {
	if !n.Enabled() {
		return nil
	}
	payload, err := event.Encode()
	if err != nil {
		return err
	}
	if err := n.rdb.Publish(ctx, ForumChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// StartForumSubscriber subscribes to ForumChannel and calls onMessage for each
// payload until ctx is cancelled. It returns once the subscription is active.
func (n *Notifier) StartForumSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if !n.Enabled() {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, ForumChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", ForumChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in forum subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
