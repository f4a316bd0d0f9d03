package models

import "time"

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ConversationMessage is one turn in the assistant widget. Messages are
// ordered by creation time and append-only within a conversation.
type ConversationMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"` // user | bot
	Timestamp time.Time `json:"timestamp"`
}
