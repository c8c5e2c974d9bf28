package chat

import (
	"time"
)

// NewConversation creates a local placeholder conversation with the
// reserved ID and selects it. While the creation lock is held a second
// call re-selects the existing placeholder instead of creating another,
// so at most one unpersisted conversation exists at a time. Creating a
// conversation while the active one is still empty is a no-op.
func (s *Store) NewConversation(model Model) {
	if !s.client.Authenticated() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creationLock {
		if s.findLocked(LocalID) != nil {
			s.currentID = LocalID
			s.hasCurrent = true
		}
		return
	}

	if current := s.findLocked(s.currentID); s.hasCurrent && current != nil && len(current.Messages) == 0 {
		return
	}

	now := time.Now()
	placeholder := &Conversation{
		ID:        LocalID,
		Title:     defaultTitle,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]*Conversation{placeholder}, s.conversations...)
	s.currentID = LocalID
	s.hasCurrent = true
	s.creationLock = true
}
