// Package history manages the prompt input history with persistence.
package history

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	historyFileName = "hiwar_input_history"
	maxHistorySize  = 500
)

// History manages input history with persistence.
type History struct {
	entries []string
	index   int    // Current position in history (-1 means new input)
	current string // Stores current input when navigating history
	mu      sync.Mutex
	path    string
}

// NewHistory creates a History and loads any persisted entries.
func NewHistory() *History {
	h := &History{
		entries: make([]string, 0),
		index:   -1,
		path:    filepath.Join(os.TempDir(), historyFileName),
	}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".hiwar")
		if err := os.MkdirAll(dir, 0755); err == nil {
			h.path = filepath.Join(dir, historyFileName)
		}
	}
	h.load()
	return h
}

func (h *History) load() {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		return // No history yet.
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := unescapeEntry(scanner.Text())
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
	if len(h.entries) > maxHistorySize {
		h.entries = h.entries[len(h.entries)-maxHistorySize:]
	}
}

func (h *History) save() {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Create(h.path)
	if err != nil {
		return // Silent failure for history persistence.
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, entry := range h.entries {
		writer.WriteString(escapeEntry(entry) + "\n")
	}
	writer.Flush()
}

// escapeEntry makes an entry single-line. Backslashes are escaped
// first so a literal "\n" in an entry survives the roundtrip.
func escapeEntry(entry string) string {
	escaped := strings.ReplaceAll(entry, "\\", "\\\\")
	return strings.ReplaceAll(escaped, "\n", "\\n")
}

// unescapeEntry reverses escapeEntry, scanning left to right so
// escape sequences are decoded exactly once.
func unescapeEntry(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) {
			switch line[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(line[i])
	}
	return b.String()
}

// Add appends a new entry and resets navigation.
func (h *History) Add(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}

	h.mu.Lock()
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		h.index = -1
		h.current = ""
		h.mu.Unlock()
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > maxHistorySize {
		h.entries = h.entries[len(h.entries)-maxHistorySize:]
	}
	h.index = -1
	h.current = ""
	h.mu.Unlock()

	h.save()
}

// Previous returns the previous entry. currentInput is saved when
// navigation starts so Next can restore it.
func (h *History) Previous(currentInput string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}
	if h.index == -1 {
		h.current = currentInput
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	} else {
		return h.entries[0], false
	}
	return h.entries[h.index], true
}

// Next returns the next entry, toward the present.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == -1 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		h.index = -1
		return h.current, true
	}
	return h.entries[h.index], true
}

// Reset resets the navigation index (call when input is modified).
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
	h.current = ""
}
