package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hiwar/internal/api"
	"hiwar/internal/debug"
)

const (
	defaultPageSize       = 15
	defaultRevealInterval = 20 * time.Millisecond
	defaultTitle          = "New Chat"
)

// Client is the slice of the backend API the store depends on.
type Client interface {
	Authenticated() bool
	ListConversations(ctx context.Context, pageNumber, pageSize int) (*api.ConversationPage, error)
	ListMessages(ctx context.Context, conversationID int64, pageNumber, pageSize int) (*api.MessagePage, error)
	SendMessage(ctx context.Context, request *api.SendMessageRequest) (*api.SendMessageResponse, error)
	RegenerateTitle(ctx context.Context, conversationID int64) (*api.TitlePair, error)
}

// Options configure a Store.
type Options struct {
	// Display language, "en" or "ar". Drives localized title selection
	// and the language code attached to outgoing messages.
	Language string
	// Page size used for conversation and message listing.
	PageSize int
	// Interval between reveal ticks.
	RevealInterval time.Duration
}

// Store holds the authoritative in-memory conversation state. All
// mutations go through its mutex: the store is the single update
// surface shared by every operation, so concurrent sends targeting
// different conversations interleave safely.
type Store struct {
	client Client
	log    zerolog.Logger

	language       string
	pageSize       int
	revealInterval time.Duration

	mu            sync.Mutex
	conversations []*Conversation
	currentID     int64
	hasCurrent    bool
	page          int
	hasMore       bool
	loading       bool
	loadingMore   bool
	creationLock  bool
	loadingTitles map[int64]bool
	lastError     string
	reveal        *Reveal
}

// NewStore instantiates an empty store.
func NewStore(client Client, options Options) *Store {
	if options.Language == "" {
		options.Language = "en"
	}
	if options.PageSize <= 0 {
		options.PageSize = defaultPageSize
	}
	if options.RevealInterval <= 0 {
		options.RevealInterval = defaultRevealInterval
	}
	return &Store{
		client:         client,
		log:            debug.GetLogger(),
		language:       options.Language,
		pageSize:       options.PageSize,
		revealInterval: options.RevealInterval,
		page:           1,
		hasMore:        true,
		loadingTitles:  map[int64]bool{},
	}
}

// Conversations returns a snapshot of the conversation list, in display
// order: any local placeholder first, then server order.
func (s *Store) Conversations() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Conversation, len(s.conversations))
	for i, conversation := range s.conversations {
		out[i] = conversation.clone()
	}
	return out
}

// Current returns a snapshot of the active conversation, if any.
func (s *Store) Current() (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation := s.findLocked(s.currentID)
	if !s.hasCurrent || conversation == nil {
		return nil, false
	}
	return conversation.clone(), true
}

// CurrentID returns the active conversation ID, if any.
func (s *Store) CurrentID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID, s.hasCurrent
}

// HasMoreConversations reports whether further pages may be fetched.
func (s *Store) HasMoreConversations() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// Loading reports whether a list or message fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CreationLocked reports whether an unpersisted conversation exists.
func (s *Store) CreationLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creationLock
}

// TitleLoading reports whether a title regeneration is in flight for
// the given conversation.
func (s *Store) TitleLoading(conversationID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingTitles[conversationID]
}

// Err returns the last recorded error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearErr drops the last recorded error message.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// StopReveal cancels the active reveal, if any. The revealed message
// keeps whatever prefix was shown; it is not finalized.
func (s *Store) StopReveal() {
	s.mu.Lock()
	reveal := s.reveal
	s.mu.Unlock()
	if reveal != nil {
		reveal.Cancel()
	}
}

// findLocked returns the conversation with the given ID, or nil.
// Callers must hold s.mu.
func (s *Store) findLocked(conversationID int64) *Conversation {
	for _, conversation := range s.conversations {
		if conversation.ID == conversationID {
			return conversation
		}
	}
	return nil
}

// updateMessage rewrites one message of one conversation in place,
// leaving every other conversation untouched.
func (s *Store) updateMessage(conversationID int64, messageID, content string, typing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversation := s.findLocked(conversationID)
	if conversation == nil {
		return
	}
	for _, message := range conversation.Messages {
		if message.ID == messageID {
			message.Content = content
			message.Typing = typing
			return
		}
	}
}

// setError records a user-facing error message.
func (s *Store) setError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}
