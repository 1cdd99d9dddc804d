package feed

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "github.com/triviabank/trivia-api/pkg/http/ws"
)

type recordingHub struct {
	msgs []ws.Message
}

func (h *recordingHub) BroadcastAll(msg ws.Message) error {
	h.msgs = append(h.msgs, msg)
	return nil
}

func TestBroadcasterForwardsQuestionEvents(t *testing.T) {
	hub := &recordingHub{}
	b := NewBroadcaster(nil, hub, "", zerolog.Nop())

	b.forward(`{"type":"question_created","question_id":24,"category":6,"at":"2024-05-01T12:00:00Z"}`)
	require.Len(t, hub.msgs, 1)
	assert.Equal(t, ws.TypeQuestionCreated, hub.msgs[0].Type)

	var payload ws.QuestionEventPayload
	require.NoError(t, json.Unmarshal(hub.msgs[0].Payload, &payload))
	assert.Equal(t, 24, payload.QuestionID)
	assert.Equal(t, 6, payload.Category)
	assert.Equal(t, "2024-05-01T12:00:00Z", payload.At)
}

func TestBroadcasterDropsBadPayloads(t *testing.T) {
	hub := &recordingHub{}
	b := NewBroadcaster(nil, hub, "", zerolog.Nop())

	b.forward(`not json`)
	b.forward(`{"type":"leaderboard_update"}`)
	assert.Empty(t, hub.msgs)
}

func TestBroadcasterRunWithoutRedis(t *testing.T) {
	b := NewBroadcaster(nil, &recordingHub{}, "", zerolog.Nop())
	assert.NoError(t, b.Run(context.Background()))
}
