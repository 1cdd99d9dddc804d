package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()
	serverConns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return <-serverConns, client
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	serverSide, client := dialPair(t)

	conn := NewConnection(serverSide, zerolog.Nop())
	id := hub.Register(conn)
	go conn.WritePump()
	assert.Equal(t, 1, hub.Len())

	require.NoError(t, hub.BroadcastAll(Message{Type: TypeQuestionCreated}))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	var got Message
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, TypeQuestionCreated, got.Type)

	hub.Unregister(id)
	assert.Equal(t, 0, hub.Len())
	assert.ErrorIs(t, conn.Send(Message{Type: TypePong}), ErrConnectionClosed)
}

func TestConnectionSendQueueFull(t *testing.T) {
	serverSide, _ := dialPair(t)
	conn := NewConnection(serverSide, zerolog.Nop())
	defer conn.Close()

	for i := 0; i < sendQueueLen; i++ {
		require.NoError(t, conn.Send(Message{Type: TypePong}))
	}
	assert.ErrorIs(t, conn.Send(Message{Type: TypePong}), ErrSendQueueFull)
}

func TestHubClose(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	serverSide, _ := dialPair(t)
	conn := NewConnection(serverSide, zerolog.Nop())
	hub.Register(conn)

	hub.Close()
	assert.Equal(t, 0, hub.Len())
	conn.Close()
}
