// Package chat answers questions about the caller's selected PDF using an
// LLM completer and keeps the per-user conversation history.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Direction records who sent a message.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// Message is one persisted chat turn.
type Message struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"-"`
	PDFID     string    `json:"pdf_id"`
	Direction Direction `json:"direction"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Request is the body of a chat call.
type Request struct {
	Message string `json:"message"`
}

// Reply is returned for a successful chat call.
type Reply struct {
	Reply    string `json:"reply"`
	PDFID    string `json:"pdf_id"`
	Filename string `json:"filename"`
}
