package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hiwar/cli/chat/styles"
	"hiwar/internal/chat"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.SidebarStyle.Render(m.renderSidebar()),
		styles.ViewportStyle.Render(m.viewport.View()),
	)
	b.WriteString(body)
	b.WriteString("\n")

	if m.sending {
		b.WriteString(fmt.Sprintf("%s Thinking...\n", m.spinner.View()))
	} else {
		b.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
		b.WriteString("\n")
	}

	if err := m.store.Err(); err != "" {
		b.WriteString(styles.ErrorStyle.Render(err))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderTitle() string {
	conversationTitle := "no conversation"
	if current, ok := m.store.Current(); ok {
		conversationTitle = current.Title
	}
	title := fmt.Sprintf(" 🤖 %s │ 💬 %s ", m.aiModel, conversationTitle)
	return styles.TitleStyle.Width(m.width).Render(title)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	conversations := m.store.Conversations()
	currentID, hasCurrent := m.store.CurrentID()

	for i, conversation := range conversations {
		title := styles.Truncate(conversation.Title, styles.TruncateLength)
		if m.store.TitleLoading(conversation.ID) {
			title = "⟳ " + title
		}
		if hasCurrent && conversation.ID == currentID {
			b.WriteString(styles.SidebarSelectedStyle.Render(title))
		} else if i == m.sidebarIndex {
			b.WriteString(styles.SidebarSelectedStyle.Render(title))
		} else {
			b.WriteString(styles.SidebarItemStyle.Render(title))
		}
		b.WriteString("\n")
	}

	if m.store.HasMoreConversations() {
		b.WriteString(styles.SidebarLoadingStyle.Render("… Alt+↓ for more"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderMessages() string {
	var b strings.Builder

	current, ok := m.store.Current()
	if !ok {
		return styles.HelpStyle.Render("Ctrl+N starts a new conversation.")
	}

	for i, message := range current.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch message.Role {
		case chat.RoleUser:
			rendered := m.renderer.Render(message.ID, message.Content, true)
			b.WriteString(styles.UserMessageStyle.Render(rendered))

		case chat.RoleAssistant:
			rendered := m.renderer.Render(message.ID, message.Content, !message.Typing)
			if message.Typing {
				rendered += styles.SpinnerStyle.Render("▋")
			}
			b.WriteString(styles.AIMessageStyle.Render(rendered))
		}
	}

	return b.String()
}
