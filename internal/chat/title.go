package chat

import (
	"context"
)

// RegenerateTitle asks the backend for a fresh localized title pair and
// rewrites the targeted conversation's title with the variant matching
// the display language. The per-conversation loading flag is cleared
// whatever happens; failures are logged and swallowed.
func (s *Store) RegenerateTitle(ctx context.Context, conversationID int64) {
	s.mu.Lock()
	if s.findLocked(conversationID) == nil || conversationID == LocalID {
		s.mu.Unlock()
		return
	}
	s.loadingTitles[conversationID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.loadingTitles, conversationID)
		s.mu.Unlock()
	}()

	pair, err := s.client.RegenerateTitle(ctx, conversationID)
	if err != nil {
		s.log.Error().Err(err).Int64("conversation_id", conversationID).Msg("regenerating title")
		return
	}

	title := localizedTitle(s.language, pair.TitleEn, pair.TitleAr)
	if title == "" {
		return
	}
	s.mu.Lock()
	if conversation := s.findLocked(conversationID); conversation != nil {
		conversation.Title = title
	}
	s.mu.Unlock()
}
