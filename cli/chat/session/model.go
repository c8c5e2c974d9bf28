package session

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"hiwar/cli/chat/styles"
	"hiwar/internal/chat"
	"hiwar/internal/configuration"
	"hiwar/internal/debug"
	"hiwar/internal/history"
	"hiwar/internal/markdown"
)

const renderThrottleInterval = 66 * time.Millisecond

var log = debug.GetLogger()

// Model represents the Bubble Tea model for the chat session.
type Model struct {
	// Core dependencies
	ctx    context.Context
	config *configuration.Config
	store  *chat.Store

	// Model used for outgoing messages.
	aiModel chat.Model

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer

	// UI state
	width         int
	height        int
	ready         bool
	sending       bool
	revealing     bool
	quitting      bool
	windowFocused bool
	sidebarIndex  int

	// Alert notifications.
	alertClipboardWrite bubbleup.AlertModel

	// Active reveal playback, nil when idle.
	reveal *chat.Reveal

	// Input history
	history           *history.History
	historyNavigating bool
}

// New creates a new chat session model.
func New(
	ctx context.Context,
	config *configuration.Config,
	store *chat.Store,
	aiModel chat.Model,
) (*Model, error) {
	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Ctrl+J to send, Ctrl+N for new chat, Alt+P/N for history, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	// Create spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	alertClipboardWrite := bubbleup.NewAlertModel(25, true, 1)

	renderer, err := markdown.NewRenderer(styles.DefaultTextareaWidth)
	if err != nil {
		return nil, err
	}

	return &Model{
		ctx:                 ctx,
		config:              config,
		store:               store,
		aiModel:             aiModel,
		windowFocused:       true,
		textarea:            ta,
		spinner:             sp,
		history:             history.NewHistory(),
		renderer:            renderer,
		alertClipboardWrite: *alertClipboardWrite,
	}, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alertClipboardWrite.Init(),
		m.loadConversations(),
	)
}
