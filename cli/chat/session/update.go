package session

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"golang.design/x/clipboard"

	"hiwar/internal/chat"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alertClipboardWrite.Update(msg)
	m.alertClipboardWrite = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	// Log for non-tick messages only
	defer func() {
		switch msg.(type) {
		case spinner.TickMsg, cursor.BlinkMsg, tea.MouseMsg, revealTickMsg:
		// Skip logging for ticks
		default:
			log.Info().Str("msg_type", fmt.Sprintf("%T", msg)).Int("sidebar_index", m.sidebarIndex).Msg("update completed")
		}
	}()

	switch msg := msg.(type) {
	case tea.FocusMsg:
		m.windowFocused = true
		m.textarea.Focus()
		cmds = append(cmds, textarea.Blink)
		return m, tea.Batch(cmds...)

	case tea.BlurMsg:
		m.windowFocused = false
		m.textarea.Blur()
		return m, nil

	case tea.KeyMsg:
		// Sidebar navigation switches conversations; selecting past the
		// loaded tail fetches the next page.
		if msg.String() == "alt+up" {
			if m.sidebarIndex > 0 {
				m.sidebarIndex--
				if id, ok := m.sidebarID(m.sidebarIndex); ok {
					return m, m.selectConversation(id)
				}
			}
			return m, nil
		}
		if msg.String() == "alt+down" {
			conversations := m.store.Conversations()
			if m.sidebarIndex < len(conversations)-1 {
				m.sidebarIndex++
				return m, m.selectConversation(conversations[m.sidebarIndex].ID)
			}
			if m.store.HasMoreConversations() {
				return m, m.loadMoreConversations()
			}
			return m, nil
		}

		// Copy the last assistant message to the clipboard.
		if msg.String() == "alt+w" {
			if content, ok := m.lastAssistantContent(); ok {
				clipboard.Write(clipboard.FmtText, []byte(content))
				cmds = append(cmds, m.alertClipboardWrite.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"))
			}
			return m, tea.Batch(cmds...)
		}

		// Export the active conversation transcript.
		if msg.String() == "alt+e" {
			if id, ok := m.store.CurrentID(); ok && id != chat.LocalID {
				if transcript, ok := m.store.Transcript(id); ok {
					path := chat.ExportFilename(id)
					if err := os.WriteFile(path, []byte(transcript), 0644); err == nil {
						cmds = append(cmds, m.alertClipboardWrite.NewAlertCmd(bubbleup.InfoKey, "Exported to "+path))
					}
				}
			}
			return m, tea.Batch(cmds...)
		}

		// Regenerate the active conversation's title.
		if msg.String() == "alt+t" {
			if id, ok := m.store.CurrentID(); ok && id != chat.LocalID && !m.store.TitleLoading(id) {
				return m, m.regenerateTitle(id)
			}
			return m, nil
		}

		if msg.Alt && !m.sending && !m.revealing {
			switch msg.String() {
			case "alt+p":
				if entry, ok := m.history.Previous(m.textarea.Value()); ok {
					m.textarea.SetValue(entry)
					m.historyNavigating = true
					m.adjustTextareaHeight()
					return m, nil
				}
			case "alt+n":
				if entry, ok := m.history.Next(); ok {
					m.textarea.SetValue(entry)
					m.historyNavigating = true
					m.adjustTextareaHeight()
					return m, nil
				}
			}
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			if m.revealing {
				m.store.StopReveal()
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case tea.KeyCtrlJ:
			if !m.sending && !m.revealing {
				m.store.ClearErr()
				if cmd := m.sendMessage(); cmd != nil {
					return m, cmd
				}
			}

		case tea.KeyCtrlN:
			if !m.sending && !m.revealing {
				m.store.NewConversation(m.aiModel)
				m.sidebarIndex = 0
				m.refreshViewport()
				m.viewport.GotoBottom()
				return m, nil
			}

		case tea.KeyCtrlR:
			if !m.sending && !m.revealing {
				return m, m.loadConversations()
			}

		case tea.KeyEnter:
			if m.historyNavigating {
				m.history.Reset()
				m.historyNavigating = false
			}
		}

		if !m.sending && !m.revealing && m.historyNavigating {
			switch msg.Type {
			case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
				m.history.Reset()
				m.historyNavigating = false
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()

	case conversationsLoadedMsg:
		conversations := m.store.Conversations()
		if m.sidebarIndex >= len(conversations) {
			m.sidebarIndex = 0
		}
		if _, ok := m.store.CurrentID(); !ok && len(conversations) > 0 {
			return m, m.selectConversation(conversations[m.sidebarIndex].ID)
		}
		m.refreshViewport()
		return m, nil

	case moreConversationsLoadedMsg:
		conversations := m.store.Conversations()
		if m.sidebarIndex < len(conversations)-1 {
			m.sidebarIndex++
			return m, m.selectConversation(conversations[m.sidebarIndex].ID)
		}
		return m, nil

	case conversationSelectedMsg:
		m.syncSidebarIndex()
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case sendFinishedMsg:
		m.sending = false
		m.syncSidebarIndex()
		m.refreshViewport()
		m.viewport.GotoBottom()
		if msg.reveal == nil {
			return m, nil
		}
		m.revealing = true
		m.reveal = msg.reveal
		return m, m.watchReveal(msg.reveal)

	case revealTickMsg:
		if m.reveal == nil {
			return m, nil
		}
		wasAtBottom := m.viewport.AtBottom()
		m.refreshViewport()
		if wasAtBottom {
			m.viewport.GotoBottom()
		}
		return m, m.watchReveal(m.reveal)

	case revealDoneMsg:
		m.revealing = false
		m.reveal = nil
		wasAtBottom := m.viewport.AtBottom()
		m.refreshViewport()
		if wasAtBottom {
			m.viewport.GotoBottom()
		}
		return m, nil

	case titleRegeneratedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.sending && !m.revealing {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.adjustTextareaHeight()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sidebarID returns the conversation ID at a sidebar position.
func (m *Model) sidebarID(index int) (int64, bool) {
	conversations := m.store.Conversations()
	if index < 0 || index >= len(conversations) {
		return 0, false
	}
	return conversations[index].ID, true
}

// syncSidebarIndex points the sidebar selection at the active
// conversation, which may have moved during a promotion.
func (m *Model) syncSidebarIndex() {
	currentID, ok := m.store.CurrentID()
	if !ok {
		return
	}
	for i, conversation := range m.store.Conversations() {
		if conversation.ID == currentID {
			m.sidebarIndex = i
			return
		}
	}
}

// lastAssistantContent returns the content of the most recent finalized
// assistant message in the active conversation.
func (m *Model) lastAssistantContent() (string, bool) {
	current, ok := m.store.Current()
	if !ok {
		return "", false
	}
	for i := len(current.Messages) - 1; i >= 0; i-- {
		message := current.Messages[i]
		if message.Role == chat.RoleAssistant && !message.Typing {
			return message.Content, true
		}
	}
	return "", false
}
