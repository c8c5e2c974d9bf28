package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hiwar/internal/api"
)

func TestSendToPersistedConversation(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 7)
	client.sendResponse = &api.SendMessageResponse{
		Content:      "Hi there",
		Model:        "GPT",
		Conversation: api.SendMessageConversation{ID: 7},
	}
	store := newTestStore(client)
	store.LoadConversations(context.Background())
	store.SelectConversation(context.Background(), 7)

	reveal := store.Send(context.Background(), "Hello", ModelGPT)
	waitReveal(t, reveal)

	current, ok := store.Current()
	require.True(t, ok)
	require.Len(t, current.Messages, 2)

	user, assistant := current.Messages[0], current.Messages[1]
	require.Equal(t, RoleUser, user.Role)
	require.Equal(t, "Hello", user.Content)
	require.Equal(t, RoleAssistant, assistant.Role)
	require.Equal(t, "Hi there", assistant.Content)
	require.False(t, assistant.Typing)

	require.Len(t, client.sendRequests, 1)
	require.NotNil(t, client.sendRequests[0].ConversationID)
	require.Equal(t, int64(7), *client.sendRequests[0].ConversationID)
}

func TestSendPromotesLocalConversation(t *testing.T) {
	client := newFakeClient()
	client.sendResponse = &api.SendMessageResponse{
		Content: "Hi there",
		Model:   "GPT",
		Conversation: api.SendMessageConversation{
			ID:      42,
			TitleEn: "Greetings",
			TitleAr: "تحيات",
		},
	}
	store := newTestStore(client)
	store.NewConversation(ModelGPT)

	reveal := store.Send(context.Background(), "Hello", ModelGPT)
	waitReveal(t, reveal)

	// The new-conversation request omits the conversation ID.
	require.Len(t, client.sendRequests, 1)
	require.Nil(t, client.sendRequests[0].ConversationID)

	conversations := store.Conversations()
	require.Len(t, conversations, 1)
	require.Equal(t, int64(42), conversations[0].ID)
	require.Equal(t, "Greetings", conversations[0].Title)
	for _, conversation := range conversations {
		require.NotEqual(t, LocalID, conversation.ID)
	}
	for _, message := range conversations[0].Messages {
		require.Equal(t, int64(42), message.ConversationID)
	}

	currentID, ok := store.CurrentID()
	require.True(t, ok)
	require.Equal(t, int64(42), currentID)
	require.False(t, store.CreationLocked())

	current, _ := store.Current()
	require.Len(t, current.Messages, 2)
	require.Equal(t, "Hello", current.Messages[0].Content)
	require.Equal(t, "Hi there", current.Messages[1].Content)
	require.False(t, current.Messages[1].Typing)
}

func TestSendPromotionPicksArabicTitle(t *testing.T) {
	client := newFakeClient()
	client.sendResponse = &api.SendMessageResponse{
		Content: "أهلاً",
		Conversation: api.SendMessageConversation{
			ID:      11,
			TitleEn: "Trip plan",
			TitleAr: "خطة الرحلة",
		},
	}
	store := NewStore(client, Options{Language: "ar", RevealInterval: time.Millisecond})
	store.NewConversation(ModelDeepseek)

	reveal := store.Send(context.Background(), "مرحبا", ModelDeepseek)
	waitReveal(t, reveal)

	conversations := store.Conversations()
	require.Equal(t, "خطة الرحلة", conversations[0].Title)
	// Multibyte content must survive the rune-by-rune reveal intact.
	require.Equal(t, "أهلاً", conversations[0].Messages[1].Content)
}

func TestSendErrorKeepsOptimisticMessages(t *testing.T) {
	client := newFakeClient()
	client.sendErr = errors.New("boom")
	store := newTestStore(client)
	store.NewConversation(ModelGPT)

	reveal := store.Send(context.Background(), "Hello", ModelGPT)
	require.Nil(t, reveal)

	// No rollback: the user message and the typing placeholder stay.
	current, ok := store.Current()
	require.True(t, ok)
	require.Len(t, current.Messages, 2)
	require.Equal(t, "Hello", current.Messages[0].Content)
	require.True(t, current.Messages[1].Typing)
	require.Empty(t, current.Messages[1].Content)

	// The creation lock is released so the user can retry.
	require.False(t, store.CreationLocked())
	require.Equal(t, "Failed to send message", store.Err())
}

func TestSendWithoutActiveConversation(t *testing.T) {
	client := newFakeClient()
	store := newTestStore(client)

	require.Nil(t, store.Send(context.Background(), "Hello", ModelGPT))
	require.Empty(t, client.sendRequests)
}

func TestRevealCancelStopsPlayback(t *testing.T) {
	client := newFakeClient()
	content := strings.Repeat("a", 2000)
	client.sendResponse = &api.SendMessageResponse{
		Content:      content,
		Conversation: api.SendMessageConversation{ID: 8},
	}
	store := NewStore(client, Options{RevealInterval: 10 * time.Millisecond})
	store.NewConversation(ModelGPT)

	reveal := store.Send(context.Background(), "go", ModelGPT)
	require.NotNil(t, reveal)
	reveal.Cancel()
	reveal.Cancel() // idempotent
	waitReveal(t, reveal)

	current, _ := store.Current()
	assistant := current.Messages[1]
	require.True(t, assistant.Typing)
	require.Less(t, len(assistant.Content), len(content))
}

func TestStopRevealCancelsActiveReveal(t *testing.T) {
	client := newFakeClient()
	client.sendResponse = &api.SendMessageResponse{
		Content:      strings.Repeat("b", 5000),
		Conversation: api.SendMessageConversation{ID: 8},
	}
	store := NewStore(client, Options{RevealInterval: 10 * time.Millisecond})
	store.NewConversation(ModelGPT)

	reveal := store.Send(context.Background(), "go", ModelGPT)
	require.NotNil(t, reveal)
	store.StopReveal()
	waitReveal(t, reveal)
}
