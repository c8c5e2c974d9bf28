package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hiwar/internal/api"
)

func TestTranscriptFormat(t *testing.T) {
	timestamp := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	conversation := &Conversation{
		ID: 7,
		Messages: []*Message{
			{Role: RoleUser, Content: "Hello", Timestamp: timestamp},
			{Role: RoleAssistant, Content: "Hi there", Timestamp: timestamp.Add(time.Minute)},
		},
	}

	transcript := Transcript(conversation)
	expected := "[USER] 2025-06-01 10:30:00\nHello" +
		"\n\n---\n\n" +
		"[ASSISTANT] 2025-06-01 10:31:00\nHi there"
	require.Equal(t, expected, transcript)
}

func TestStoreTranscript(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 7)
	client.messages[7] = &api.MessagePage{Items: []*api.MessageItem{
		{ID: 1, Text: "Hello", SentBy: "USER"},
	}}
	store := newTestStore(client)
	store.LoadConversations(context.Background())
	store.SelectConversation(context.Background(), 7)

	transcript, ok := store.Transcript(7)
	require.True(t, ok)
	require.Contains(t, transcript, "[USER]")
	require.Contains(t, transcript, "Hello")

	_, ok = store.Transcript(404)
	require.False(t, ok)
}

func TestExportFilename(t *testing.T) {
	require.Regexp(t, `^chat-7-\d+\.txt$`, ExportFilename(7))
}
