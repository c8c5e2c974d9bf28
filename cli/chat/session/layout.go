package session

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"hiwar/cli/chat/styles"
)

// adjustTextareaHeight resizes the textarea based on content line count.
func (m *Model) adjustTextareaHeight() {
	content := m.textarea.Value()
	lineCount := strings.Count(content, "\n") + 1

	newHeight := lineCount
	if newHeight < styles.MinTextareaHeight {
		newHeight = styles.MinTextareaHeight
	}
	if newHeight > styles.MaxTextareaHeight {
		newHeight = styles.MaxTextareaHeight
	}

	oldHeight := m.textarea.Height()
	if oldHeight != newHeight {
		m.textarea.SetHeight(newHeight)

		heightDiff := newHeight - oldHeight

		m.recalculateLayout()

		if heightDiff != 0 && m.ready {
			m.viewport.LineDown(heightDiff)
		}
	}
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

// recalculateLayout adjusts viewport and textarea dimensions based on current state.
func (m *Model) recalculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	viewportHeight := m.height - styles.HeaderHeight
	viewportWidth := m.width - styles.SidebarStyle.GetHorizontalFrameSize() - styles.SidebarWidth

	if !m.sending {
		viewportHeight -= m.textarea.Height() + styles.InputBorderHeight
	}

	if m.store.Err() != "" {
		viewportHeight -= 1
	}

	if viewportHeight < styles.MinViewportHeight {
		viewportHeight = styles.MinViewportHeight
	}
	m.renderer.SetWidth(viewportWidth - styles.MessageHorizontalFrameSize())

	if !m.ready {
		m.viewport = viewport.New(viewportWidth, viewportHeight)
		m.ready = true
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
	} else {
		m.viewport.Width = viewportWidth
		m.viewport.Height = viewportHeight
		m.viewport.SetContent(m.renderMessages())
	}

	m.textarea.SetWidth(m.width - styles.TextAreaStyle.GetHorizontalPadding() - styles.TextAreaStyle.GetHorizontalBorderSize())
}
