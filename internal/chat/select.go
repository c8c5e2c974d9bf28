package chat

import (
	"context"
)

// SelectConversation makes the given conversation active. The first
// time a persisted conversation is selected, its first page of messages
// is fetched. Selecting an unknown ID is a silent no-op.
func (s *Store) SelectConversation(ctx context.Context, conversationID int64) {
	s.mu.Lock()
	conversation := s.findLocked(conversationID)
	if conversation == nil {
		s.mu.Unlock()
		return
	}
	s.currentID = conversationID
	s.hasCurrent = true
	needsMessages := len(conversation.Messages) == 0 && conversationID != LocalID
	s.mu.Unlock()

	if needsMessages {
		s.loadMessages(ctx, conversationID)
	}
}
