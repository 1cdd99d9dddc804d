package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/triviabank/trivia-api/internal/trivia"
	ws "github.com/triviabank/trivia-api/pkg/http/ws"
)

// DefaultChannel is the Redis Pub/Sub channel carrying question events.
const DefaultChannel = "trivia:questions"

// Event is the wire form of a question bank change on the Redis channel.
type Event struct {
	Type       string    `json:"type"`
	QuestionID int       `json:"question_id"`
	Category   int       `json:"category,omitempty"`
	At         time.Time `json:"at"`
}

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher announces question bank changes on a Redis channel.
type Publisher struct {
	redis   redisPublisher
	channel string
	now     func() time.Time
}

var _ trivia.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a Pub/Sub publisher. An empty channel selects DefaultChannel.
func NewPublisher(client redisPublisher, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{redis: client, channel: channel, now: time.Now}
}

func (p *Publisher) QuestionCreated(ctx context.Context, q trivia.Question) error {
	return p.publish(ctx, Event{
		Type:       ws.TypeQuestionCreated,
		QuestionID: q.ID,
		Category:   q.Category,
		At:         p.now().UTC(),
	})
}

func (p *Publisher) QuestionDeleted(ctx context.Context, id int) error {
	return p.publish(ctx, Event{
		Type:       ws.TypeQuestionDeleted,
		QuestionID: id,
		At:         p.now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}
	if err := p.redis.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", evt.Type, err)
	}
	return nil
}
