package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/triviabank/trivia-api/pkg/http/ws"
)

type fanout interface {
	BroadcastAll(msg ws.Message) error
}

// Broadcaster listens for question events on Redis Pub/Sub and forwards them to all WebSocket clients.
type Broadcaster struct {
	redis   *redis.Client
	hub     fanout
	channel string
	logger  zerolog.Logger
}

// NewBroadcaster creates a Pub/Sub powered question event broadcaster.
func NewBroadcaster(client *redis.Client, hub fanout, channel string, logger zerolog.Logger) *Broadcaster {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Broadcaster{
		redis:   client,
		hub:     hub,
		channel: channel,
		logger:  logger.With().Str("component", "feed_broadcaster").Logger(),
	}
}

// Run subscribes to the event channel and blocks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.redis == nil || b.hub == nil {
		return nil
	}

	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.forward(msg.Payload)
		}
	}
}

func (b *Broadcaster) forward(payload string) {
	var evt Event
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		b.logger.Warn().Err(err).Msg("failed to decode question event")
		return
	}
	switch evt.Type {
	case ws.TypeQuestionCreated, ws.TypeQuestionDeleted:
	default:
		b.logger.Warn().Str("type", evt.Type).Msg("unknown question event type")
		return
	}

	raw, err := json.Marshal(ws.QuestionEventPayload{
		QuestionID: evt.QuestionID,
		Category:   evt.Category,
		At:         evt.At.Format(time.RFC3339),
	})
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to marshal question event WS payload")
		return
	}

	if err := b.hub.BroadcastAll(ws.Message{Type: evt.Type, Payload: raw}); err != nil {
		b.logger.Warn().Err(err).Msg("failed to broadcast question event")
	}
}
