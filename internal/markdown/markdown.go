// Package markdown renders assistant messages for terminal display.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// Renderer wraps a glamour terminal renderer with width handling and a
// small cache keyed by message ID, since finalized messages never change.
type Renderer struct {
	glamour *glamour.TermRenderer
	width   int
	cache   map[string]string
}

// NewRenderer creates a renderer for the given width.
func NewRenderer(width int) (*Renderer, error) {
	gr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		glamour: gr,
		width:   width,
		cache:   map[string]string{},
	}, nil
}

// Render renders markdown content. finalized content is cached under
// its message ID; content still being revealed is returned as-is, since
// partial markdown renders badly.
func (r *Renderer) Render(messageID, content string, finalized bool) string {
	if !finalized {
		return content
	}
	if rendered, ok := r.cache[messageID]; ok {
		return rendered
	}
	rendered, err := r.glamour.Render(content)
	if err != nil {
		return content
	}
	r.cache[messageID] = rendered
	return rendered
}

// SetWidth updates the renderer width, recreating internals if needed.
func (r *Renderer) SetWidth(width int) error {
	if r.width == width {
		return nil
	}
	newRenderer, err := NewRenderer(width)
	if err != nil {
		return err
	}
	*r = *newRenderer
	return nil
}
