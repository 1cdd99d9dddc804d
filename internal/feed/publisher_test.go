package feed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triviabank/trivia-api/internal/trivia"
)

type published struct {
	channel string
	data    []byte
}

type fakeRedis struct {
	sent []published
	err  error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.sent = append(f.sent, published{channel: channel, data: message.([]byte)})
	return redis.NewIntResult(1, f.err)
}

func TestPublisherQuestionCreated(t *testing.T) {
	client := &fakeRedis{}
	pub := NewPublisher(client, "")
	pub.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, pub.QuestionCreated(context.Background(), trivia.Question{ID: 24, Category: 6}))
	require.Len(t, client.sent, 1)
	assert.Equal(t, DefaultChannel, client.sent[0].channel)

	var evt Event
	require.NoError(t, json.Unmarshal(client.sent[0].data, &evt))
	assert.Equal(t, "question_created", evt.Type)
	assert.Equal(t, 24, evt.QuestionID)
	assert.Equal(t, 6, evt.Category)
	assert.True(t, evt.At.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestPublisherQuestionDeleted(t *testing.T) {
	client := &fakeRedis{}
	pub := NewPublisher(client, "custom")

	require.NoError(t, pub.QuestionDeleted(context.Background(), 3))
	assert.Equal(t, "custom", client.sent[0].channel)
	assert.Contains(t, string(client.sent[0].data), `"type":"question_deleted"`)
}

func TestPublisherPropagatesRedisError(t *testing.T) {
	pub := NewPublisher(&fakeRedis{err: errors.New("connection refused")}, "")
	err := pub.QuestionDeleted(context.Background(), 3)
	assert.ErrorContains(t, err, "connection refused")
}
