package chat

import (
	"fmt"
	"strings"
	"time"
)

const transcriptDivider = "\n\n---\n\n"

// Transcript serializes the conversation's messages into a plain-text
// transcript. ok is false when the conversation is not in the store.
// The store is not mutated.
func (s *Store) Transcript(conversationID int64) (string, bool) {
	s.mu.Lock()
	conversation := s.findLocked(conversationID)
	if conversation == nil {
		s.mu.Unlock()
		return "", false
	}
	snapshot := conversation.clone()
	s.mu.Unlock()
	return Transcript(snapshot), true
}

// Transcript formats a conversation as `[ROLE] timestamp\ncontent`
// entries separated by a divider.
func Transcript(conversation *Conversation) string {
	entries := make([]string, len(conversation.Messages))
	for i, message := range conversation.Messages {
		entries[i] = fmt.Sprintf(
			"[%s] %s\n%s",
			strings.ToUpper(string(message.Role)),
			message.Timestamp.Format("2006-01-02 15:04:05"),
			message.Content,
		)
	}
	return strings.Join(entries, transcriptDivider)
}

// ExportFilename returns the canonical transcript filename for a
// conversation.
func ExportFilename(conversationID int64) string {
	return fmt.Sprintf("chat-%d-%d.txt", conversationID, time.Now().UnixMilli())
}
