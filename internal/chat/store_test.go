package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hiwar/internal/api"
)

// fakeClient implements Client against canned responses.
type fakeClient struct {
	mu            sync.Mutex
	authenticated bool

	pages       map[int]*api.ConversationPage
	listErr     error
	listCalls   int
	listStarted chan struct{}
	listBlock   chan struct{}

	messages     map[int64]*api.MessagePage
	messagesErr  error
	messageCalls int

	sendResponse *api.SendMessageResponse
	sendErr      error
	sendRequests []*api.SendMessageRequest

	titlePair *api.TitlePair
	titleErr  error
}

func (f *fakeClient) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

func (f *fakeClient) ListConversations(ctx context.Context, pageNumber, pageSize int) (*api.ConversationPage, error) {
	f.mu.Lock()
	f.listCalls++
	started, block, err, page := f.listStarted, f.listBlock, f.listErr, f.pages[pageNumber]
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &api.ConversationPage{PageNumber: pageNumber, PageSize: pageSize}, nil
	}
	return page, nil
}

func (f *fakeClient) ListMessages(ctx context.Context, conversationID int64, pageNumber, pageSize int) (*api.MessagePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messageCalls++
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	if page, ok := f.messages[conversationID]; ok {
		return page, nil
	}
	return &api.MessagePage{PageNumber: pageNumber, PageSize: pageSize}, nil
}

func (f *fakeClient) SendMessage(ctx context.Context, request *api.SendMessageRequest) (*api.SendMessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendRequests = append(f.sendRequests, request)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.sendResponse, nil
}

func (f *fakeClient) RegenerateTitle(ctx context.Context, conversationID int64) (*api.TitlePair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.titleErr != nil {
		return nil, f.titleErr
	}
	return f.titlePair, nil
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		authenticated: true,
		pages:         map[int]*api.ConversationPage{},
		messages:      map[int64]*api.MessagePage{},
	}
}

func conversationPage(pageNumber, pageSize, totalPages int, ids ...int64) *api.ConversationPage {
	page := &api.ConversationPage{PageNumber: pageNumber, PageSize: pageSize, TotalPages: totalPages}
	for _, id := range ids {
		page.Items = append(page.Items, &api.ConversationItem{ID: id, Title: "Conversation"})
	}
	return page
}

func newTestStore(client *fakeClient) *Store {
	return NewStore(client, Options{Language: "en", PageSize: 15, RevealInterval: time.Millisecond})
}

func waitReveal(t *testing.T, reveal *Reveal) {
	t.Helper()
	require.NotNil(t, reveal)
	select {
	case <-reveal.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("reveal did not finish")
	}
}

func TestLoadConversationsReplacesList(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 3, 2, 1)
	store := newTestStore(client)

	store.LoadConversations(context.Background())

	conversations := store.Conversations()
	require.Len(t, conversations, 3)
	require.Equal(t, int64(3), conversations[0].ID)
	require.False(t, store.Loading())
	require.Empty(t, store.Err())
}

func TestLoadConversationsPreservesPlaceholder(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 9)
	store := newTestStore(client)

	store.NewConversation(ModelGPT)
	store.LoadConversations(context.Background())

	conversations := store.Conversations()
	require.Len(t, conversations, 2)
	require.Equal(t, LocalID, conversations[0].ID)
	require.Equal(t, int64(9), conversations[1].ID)
}

func TestLoadConversationsErrorSurfacedInState(t *testing.T) {
	client := newFakeClient()
	client.listErr = context.DeadlineExceeded
	store := newTestStore(client)

	store.LoadConversations(context.Background())

	require.False(t, store.Loading())
	require.Equal(t, "Failed to load conversations", store.Err())
}

func TestHasMoreConversationsFromReportedTotal(t *testing.T) {
	client := newFakeClient()
	page1 := conversationPage(1, 15, 3)
	for i := int64(1); i <= 15; i++ {
		page1.Items = append(page1.Items, &api.ConversationItem{ID: i})
	}
	client.pages[1] = page1
	store := newTestStore(client)

	store.LoadConversations(context.Background())
	require.True(t, store.HasMoreConversations())

	// Page 2 brings the loaded count up to the reported total.
	page2 := conversationPage(2, 15, 1)
	for i := int64(16); i <= 30; i++ {
		page2.Items = append(page2.Items, &api.ConversationItem{ID: i})
	}
	client.mu.Lock()
	client.pages[2] = page2
	client.mu.Unlock()

	store.LoadMoreConversations(context.Background())
	require.Len(t, store.Conversations(), 30)
	require.False(t, store.HasMoreConversations())
}

func TestLoadMoreConversationsSingleFlight(t *testing.T) {
	client := newFakeClient()
	client.pages[2] = conversationPage(2, 15, 10, 1, 2)
	client.listStarted = make(chan struct{}, 2)
	client.listBlock = make(chan struct{})
	store := newTestStore(client)

	done := make(chan struct{})
	go func() {
		store.LoadMoreConversations(context.Background())
		close(done)
	}()
	<-client.listStarted

	// Second call while the first request is unresolved must be dropped.
	store.LoadMoreConversations(context.Background())

	close(client.listBlock)
	<-done

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Equal(t, 1, client.listCalls)
}

func TestLoadMoreConversationsGuards(t *testing.T) {
	client := newFakeClient()
	client.authenticated = false
	store := newTestStore(client)

	store.LoadMoreConversations(context.Background())
	require.Zero(t, client.listCalls)

	client.authenticated = true
	client.pages[2] = conversationPage(2, 15, 0)
	store.LoadMoreConversations(context.Background())
	require.Equal(t, 1, client.listCalls)
	require.False(t, store.HasMoreConversations())

	// No more pages: dropped without a request.
	store.LoadMoreConversations(context.Background())
	require.Equal(t, 1, client.listCalls)
}

func TestSelectConversationLoadsMessagesOnce(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 7)
	client.messages[7] = &api.MessagePage{Items: []*api.MessageItem{
		{ID: 100, Text: "hello", SentBy: "USER"},
		{ID: 101, Text: "hi!", SentBy: "Bot", ModelUsed: "GPT"},
	}}
	store := newTestStore(client)

	store.LoadConversations(context.Background())
	store.SelectConversation(context.Background(), 7)

	current, ok := store.Current()
	require.True(t, ok)
	require.Len(t, current.Messages, 2)
	require.Equal(t, RoleUser, current.Messages[0].Role)
	require.Equal(t, RoleAssistant, current.Messages[1].Role)
	require.Equal(t, "100", current.Messages[0].ID)
	require.Equal(t, ModelGPT, current.Messages[1].Model)

	// Messages already loaded: no second fetch.
	store.SelectConversation(context.Background(), 7)
	require.Equal(t, 1, client.messageCalls)
}

func TestSelectUnknownConversationIsNoop(t *testing.T) {
	store := newTestStore(newFakeClient())
	store.SelectConversation(context.Background(), 99)
	_, ok := store.Current()
	require.False(t, ok)
}

func TestNewConversationLock(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 5)
	client.messages[5] = &api.MessagePage{Items: []*api.MessageItem{{ID: 1, Text: "x", SentBy: "USER"}}}
	store := newTestStore(client)
	store.LoadConversations(context.Background())
	store.SelectConversation(context.Background(), 5)

	store.NewConversation(ModelGPT)
	require.True(t, store.CreationLocked())

	// A second call must not create a second placeholder.
	store.NewConversation(ModelGemini)

	placeholders := 0
	for _, conversation := range store.Conversations() {
		if conversation.ID == LocalID {
			placeholders++
		}
	}
	require.Equal(t, 1, placeholders)
	currentID, ok := store.CurrentID()
	require.True(t, ok)
	require.Equal(t, LocalID, currentID)
}

func TestNewConversationNoopWhenCurrentIsEmpty(t *testing.T) {
	client := newFakeClient()
	client.pages[1] = conversationPage(1, 15, 1, 5)
	store := newTestStore(client)
	store.LoadConversations(context.Background())
	store.SelectConversation(context.Background(), 5)

	// Conversation 5 has no messages: creating a new one is churn.
	store.NewConversation(ModelGPT)
	require.False(t, store.CreationLocked())
	require.Len(t, store.Conversations(), 1)
}
