// Package chat implements the client-side conversation state: the
// conversation list with its pagination cursor, optimistic message
// insertion, placeholder-to-real conversation promotion, timed reveal
// of assistant responses, and per-conversation title regeneration.
package chat

import (
	"time"
)

// LocalID is the reserved conversation ID of a conversation created
// locally and not yet acknowledged by the backend. At most one
// conversation with this ID exists at any time.
const LocalID int64 = 0

// Model enumerates the selectable AI models.
type Model string

// Known models.
const (
	ModelGPT      Model = "GPT"
	ModelGemini   Model = "Gemini"
	ModelDeepseek Model = "DEEPSEEK"
)

// Role of a message author.
type Role string

// Known roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. IDs are client-generated strings:
// time-derived for user messages, "ai-" prefixed for assistant
// placeholders, and the server's numeric ID rendered as text for
// messages loaded from the backend.
type Message struct {
	ID             string
	ConversationID int64
	Role           Role
	Content        string
	Timestamp      time.Time
	LanguageCode   string
	Model          Model
	// Typing is true while the content is being revealed incrementally.
	// Once false, the content is final.
	Typing bool
}

// Conversation holds an ordered message history with an AI model.
type Conversation struct {
	ID        int64
	Title     string
	Model     Model
	Messages  []*Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// clone returns a deep copy for snapshots handed to the UI.
func (c *Conversation) clone() *Conversation {
	out := *c
	out.Messages = make([]*Message, len(c.Messages))
	for i, message := range c.Messages {
		copied := *message
		out.Messages[i] = &copied
	}
	return &out
}
