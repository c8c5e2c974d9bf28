package chat

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"hiwar/internal/api"
)

// Send appends the user's message and an empty assistant placeholder to
// the active conversation, issues the send, promotes a local
// conversation to its server-assigned ID, and starts revealing the
// response into the placeholder. It returns the reveal handle, or nil
// when there is no active conversation or the request failed.
//
// On failure the optimistic user message and the placeholder stay
// visible; only the creation lock is rolled back so the user can retry.
func (s *Store) Send(ctx context.Context, text string, model Model) *Reveal {
	s.mu.Lock()
	if !s.hasCurrent {
		s.mu.Unlock()
		return nil
	}
	conversationID := s.currentID
	isNew := conversationID == LocalID
	conversation := s.findLocked(conversationID)
	if conversation == nil {
		s.mu.Unlock()
		return nil
	}

	now := time.Now()
	userMessage := &Message{
		ID:             strconv.FormatInt(now.UnixMilli(), 10),
		ConversationID: conversationID,
		Role:           RoleUser,
		Content:        text,
		Timestamp:      now,
		LanguageCode:   s.language,
	}
	// The placeholder ID must never collide with a server message ID,
	// so it carries a prefix no numeric ID can have.
	placeholder := &Message{
		ID:             "ai-" + uuid.New().String()[:8],
		ConversationID: conversationID,
		Role:           RoleAssistant,
		Timestamp:      now,
		LanguageCode:   s.language,
		Model:          model,
		Typing:         true,
	}
	conversation.Messages = append(conversation.Messages, userMessage, placeholder)
	conversation.UpdatedAt = now
	s.mu.Unlock()

	request := &api.SendMessageRequest{
		Text:     text,
		Model:    string(model),
		Provider: string(model),
	}
	if !isNew {
		request.ConversationID = &conversationID
	}

	response, err := s.client.SendMessage(ctx, request)
	if err != nil {
		s.log.Error().Err(err).Msg("sending message")
		s.mu.Lock()
		if isNew {
			s.creationLock = false
		}
		s.lastError = "Failed to send message"
		s.mu.Unlock()
		return nil
	}

	targetID := conversationID
	if isNew && response.Conversation.ID != LocalID {
		targetID = s.promote(response.Conversation.ID, &response.Conversation)
	}

	reveal := newReveal(s, targetID, placeholder.ID, response.Content, s.revealInterval)
	s.mu.Lock()
	s.reveal = reveal
	s.mu.Unlock()
	reveal.start()
	return reveal
}

// promote rewrites the local placeholder conversation (and the active
// pointer) to the server-assigned ID, applies any localized title the
// backend generated, and releases the creation lock.
func (s *Store) promote(realID int64, conversation *api.SendMessageConversation) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, candidate := range s.conversations {
		if candidate.ID != LocalID {
			continue
		}
		candidate.ID = realID
		for _, message := range candidate.Messages {
			message.ConversationID = realID
		}
		if title := localizedTitle(s.language, conversation.TitleEn, conversation.TitleAr); title != "" {
			candidate.Title = title
		}
	}
	if s.hasCurrent && s.currentID == LocalID {
		s.currentID = realID
	}
	s.creationLock = false
	return realID
}

// localizedTitle picks the variant matching the display language,
// falling back to the other variant when the preferred one is absent.
func localizedTitle(language, titleEn, titleAr string) string {
	if language == "ar" {
		if titleAr != "" {
			return titleAr
		}
		return titleEn
	}
	if titleEn != "" {
		return titleEn
	}
	return titleAr
}
