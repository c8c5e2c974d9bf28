package chat

import (
	"context"
	"strconv"
	"strings"
)

// LoadConversations fetches the first page of conversations and
// replaces the list, re-pinning any local placeholder to the front.
// Errors are surfaced through Err, never returned.
func (s *Store) LoadConversations(ctx context.Context) {
	if !s.client.Authenticated() {
		return
	}
	s.mu.Lock()
	s.loading = true
	s.page = 1
	s.mu.Unlock()

	page, err := s.client.ListConversations(ctx, 1, s.pageSize)
	if err != nil {
		s.log.Error().Err(err).Msg("loading conversations")
		s.mu.Lock()
		s.loading = false
		s.lastError = "Failed to load conversations"
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conversations := make([]*Conversation, 0, len(page.Items)+1)
	if placeholder := s.findLocked(LocalID); placeholder != nil {
		conversations = append(conversations, placeholder)
	}
	for _, item := range page.Items {
		conversations = append(conversations, &Conversation{
			ID:        item.ID,
			Title:     item.Title,
			Model:     ModelGPT,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	s.conversations = conversations
	s.hasMore = len(page.Items) < totalReported(page.TotalPages, page.PageSize, s.pageSize)
	s.loading = false
}

// LoadMoreConversations appends the next page. It is a no-op when not
// authenticated, when a fetch is already in flight, or when no further
// pages exist; concurrent calls are dropped, not queued.
func (s *Store) LoadMoreConversations(ctx context.Context) {
	if !s.client.Authenticated() {
		return
	}
	s.mu.Lock()
	if s.loadingMore || !s.hasMore {
		s.mu.Unlock()
		return
	}
	s.loadingMore = true
	nextPage := s.page + 1
	s.mu.Unlock()

	page, err := s.client.ListConversations(ctx, nextPage, s.pageSize)
	if err != nil {
		s.log.Error().Err(err).Msg("loading more conversations")
		s.mu.Lock()
		s.loadingMore = false
		s.lastError = "Failed to load more conversations"
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	loaded := 0
	for _, item := range page.Items {
		if item.ID == LocalID || s.findLocked(item.ID) != nil {
			continue
		}
		s.conversations = append(s.conversations, &Conversation{
			ID:        item.ID,
			Title:     item.Title,
			Model:     ModelGPT,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	for _, conversation := range s.conversations {
		if conversation.ID != LocalID {
			loaded++
		}
	}
	s.page = nextPage
	s.hasMore = loaded < totalReported(page.TotalPages, page.PageSize, s.pageSize)
	s.loadingMore = false
}

// loadMessages fetches the first page of a conversation's messages and
// assigns them, mapping the wire sent_by field onto roles.
func (s *Store) loadMessages(ctx context.Context, conversationID int64) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	page, err := s.client.ListMessages(ctx, conversationID, 1, s.pageSize)
	if err != nil {
		s.log.Error().Err(err).Int64("conversation_id", conversationID).Msg("loading messages")
		s.mu.Lock()
		s.loading = false
		s.lastError = "Failed to load messages"
		s.mu.Unlock()
		return
	}

	messages := make([]*Message, 0, len(page.Items))
	for _, item := range page.Items {
		role := RoleUser
		if strings.EqualFold(item.SentBy, "bot") {
			role = RoleAssistant
		}
		messages = append(messages, &Message{
			ID:             strconv.FormatInt(item.ID, 10),
			ConversationID: conversationID,
			Role:           role,
			Content:        item.Text,
			Timestamp:      item.CreatedAt,
			LanguageCode:   s.language,
			Model:          Model(item.ModelUsed),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conversation := s.findLocked(conversationID); conversation != nil {
		conversation.Messages = messages
	}
	s.loading = false
}

// totalReported derives the total item count the server is reporting.
// The backend's totalPages field counts pages, so the total is pages
// times the page size it echoes back.
func totalReported(totalPages, pageSize, fallbackPageSize int) int {
	if pageSize <= 0 {
		pageSize = fallbackPageSize
	}
	return totalPages * pageSize
}
