package session

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hiwar/internal/chat"
)

// Messages emitted by commands.
type (
	conversationsLoadedMsg     struct{}
	moreConversationsLoadedMsg struct{}
	conversationSelectedMsg    struct{}
	sendFinishedMsg            struct{ reveal *chat.Reveal }
	revealTickMsg              struct{}
	revealDoneMsg              struct{}
	titleRegeneratedMsg        struct{ conversationID int64 }
)

func (m *Model) loadConversations() tea.Cmd {
	return func() tea.Msg {
		m.store.LoadConversations(m.ctx)
		return conversationsLoadedMsg{}
	}
}

func (m *Model) loadMoreConversations() tea.Cmd {
	return func() tea.Msg {
		m.store.LoadMoreConversations(m.ctx)
		return moreConversationsLoadedMsg{}
	}
}

func (m *Model) selectConversation(conversationID int64) tea.Cmd {
	return func() tea.Msg {
		m.store.SelectConversation(m.ctx, conversationID)
		return conversationSelectedMsg{}
	}
}

func (m *Model) sendMessage() tea.Cmd {
	userInput := strings.TrimSpace(m.textarea.Value())
	if userInput == "" {
		return nil
	}

	m.history.Add(userInput)
	m.historyNavigating = false
	m.textarea.Reset()
	m.sending = true
	m.refreshViewport()
	m.viewport.GotoBottom()

	send := func() tea.Msg {
		reveal := m.store.Send(m.ctx, userInput, m.aiModel)
		return sendFinishedMsg{reveal: reveal}
	}
	return tea.Batch(m.spinner.Tick, send)
}

// watchReveal re-renders at a throttled pace while a reveal plays, and
// reports completion once the playback goroutine finishes.
func (m *Model) watchReveal(reveal *chat.Reveal) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-reveal.Done():
			return revealDoneMsg{}
		case <-time.After(renderThrottleInterval):
			return revealTickMsg{}
		}
	}
}

func (m *Model) regenerateTitle(conversationID int64) tea.Cmd {
	return func() tea.Msg {
		m.store.RegenerateTitle(m.ctx, conversationID)
		return titleRegeneratedMsg{conversationID: conversationID}
	}
}
