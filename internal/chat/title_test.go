package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hiwar/internal/api"
)

func TestRegenerateTitlePicksLanguageVariant(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 7)
	client.titlePair = &api.TitlePair{TitleEn: "Trip plan", TitleAr: "خطة الرحلة"}
	store := NewStore(client, Options{Language: "ar", RevealInterval: time.Millisecond})
	store.LoadConversations(context.Background())

	store.RegenerateTitle(context.Background(), 7)

	require.Equal(t, "خطة الرحلة", store.Conversations()[0].Title)
	require.False(t, store.TitleLoading(7))
}

func TestRegenerateTitleFallsBackWhenVariantMissing(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 7)
	client.titlePair = &api.TitlePair{TitleEn: "Trip plan"}
	store := NewStore(client, Options{Language: "ar", RevealInterval: time.Millisecond})
	store.LoadConversations(context.Background())

	store.RegenerateTitle(context.Background(), 7)

	require.Equal(t, "Trip plan", store.Conversations()[0].Title)
}

func TestRegenerateTitleErrorIsSwallowed(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 7)
	client.titleErr = errors.New("boom")
	store := newTestStore(client)
	store.LoadConversations(context.Background())

	store.RegenerateTitle(context.Background(), 7)

	require.Equal(t, "Conversation", store.Conversations()[0].Title)
	require.False(t, store.TitleLoading(7))
	require.Empty(t, store.Err())
}

func TestRegenerateTitleUnknownConversationIsNoop(t *testing.T) {
	client := newFakeClient()
	store := newTestStore(client)
	store.RegenerateTitle(context.Background(), 404)
	require.False(t, store.TitleLoading(404))
}
