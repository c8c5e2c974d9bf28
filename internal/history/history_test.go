package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	return &History{
		entries: make([]string, 0),
		index:   -1,
		path:    filepath.Join(t.TempDir(), historyFileName),
	}
}

func TestEntriesSurviveReload(t *testing.T) {
	h := newTestHistory(t)
	entries := []string{
		"plain entry",
		"multi\nline\nentry",
		`literal backslash-n \n stays literal`,
		`trailing backslash \`,
	}
	for _, entry := range entries {
		h.Add(entry)
	}

	reloaded := &History{entries: make([]string, 0), index: -1, path: h.path}
	reloaded.load()
	require.Equal(t, entries, reloaded.entries)
}

func TestEscapeEntryRoundtrip(t *testing.T) {
	for _, entry := range []string{
		"no escapes",
		"line one\nline two",
		`already escaped \n`,
		`\\n`,
		`mixed \ and` + "\n" + `breaks`,
	} {
		escaped := escapeEntry(entry)
		require.NotContains(t, escaped, "\n")
		require.Equal(t, entry, unescapeEntry(escaped))
	}
}

func TestPreviousNextNavigation(t *testing.T) {
	h := newTestHistory(t)
	h.Add("first")
	h.Add("second")

	entry, ok := h.Previous("draft")
	require.True(t, ok)
	require.Equal(t, "second", entry)

	entry, ok = h.Previous("draft")
	require.True(t, ok)
	require.Equal(t, "first", entry)

	// Walking forward past the newest entry restores the draft.
	entry, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "second", entry)
	entry, ok = h.Next()
	require.True(t, ok)
	require.Equal(t, "draft", entry)
}

func TestAddDeduplicatesLastEntry(t *testing.T) {
	h := newTestHistory(t)
	h.Add("same")
	h.Add("same")
	require.Len(t, h.entries, 1)
}
