package responder

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/childhope-org/childhope-backend/internal/models"
)

// Conversation is the append-only, creation-ordered message history of
// one widget session. It starts with the scripted greeting and is
// cleared back to it on Reset.
type Conversation struct {
	mu       sync.Mutex
	messages []models.ConversationMessage
}

// NewConversation returns a conversation seeded with the greeting.
func NewConversation() *Conversation {
	c := &Conversation{}
	c.appendLocked(Greeting, models.SenderBot)
	return c
}

// Ask appends the user's message, computes the scripted reply and
// appends it, returning the bot turn.
func (c *Conversation) Ask(input string) models.ConversationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendLocked(input, models.SenderUser)
	return c.appendLocked(Respond(input), models.SenderBot)
}

// Messages returns a copy of the history in creation order.
func (c *Conversation) Messages() []models.ConversationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ConversationMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Reset clears the history back to the greeting.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.appendLocked(Greeting, models.SenderBot)
}

func (c *Conversation) appendLocked(content, sender string) models.ConversationMessage {
	msg := models.ConversationMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	}
	c.messages = append(c.messages, msg)
	return msg
}

// Conversations tracks live widget conversations by id. Entries live in
// process memory only; a widget reload starts a fresh conversation.
type Conversations struct {
	mu    sync.Mutex
	byID  map[string]*Conversation
}

// NewConversations returns an empty registry.
func NewConversations() *Conversations {
	return &Conversations{byID: make(map[string]*Conversation)}
}

// Get returns the conversation for id, creating it when unknown. An
// empty id allocates a new conversation under a fresh id.
func (r *Conversations) Get(id string) (*Conversation, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	conv, ok := r.byID[id]
	if !ok {
		conv = NewConversation()
		r.byID[id] = conv
	}
	return conv, id
}
