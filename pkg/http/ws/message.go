package ws

import "encoding/json"

// MessageType constants for the question feed protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypeQuestionCreated = "question_created"
	TypeQuestionDeleted = "question_deleted"
	TypePong            = "pong"
	TypeError           = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// QuestionEventPayload describes a change to the question bank.
type QuestionEventPayload struct {
	QuestionID int    `json:"question_id"`
	Category   int    `json:"category,omitempty"`
	At         string `json:"at"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
