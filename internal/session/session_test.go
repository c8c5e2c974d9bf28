package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetAbsentKey(t *testing.T) {
	store := newTestStore(t)

	value, err := store.Get("missing")
	require.NoError(t, err)
	require.Empty(t, value)
}

func TestSetOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set(KeyLanguage, "en"))
	require.NoError(t, store.Set(KeyLanguage, "ar"))

	value, err := store.Get(KeyLanguage)
	require.NoError(t, err)
	require.Equal(t, "ar", value)
}

func TestTokensRoundtrip(t *testing.T) {
	store := newTestStore(t)

	_, _, ok := store.Tokens()
	require.False(t, ok)

	require.NoError(t, store.SetTokens("access-1", "refresh-1"))
	access, refresh, ok := store.Tokens()
	require.True(t, ok)
	require.Equal(t, "access-1", access)
	require.Equal(t, "refresh-1", refresh)

	require.NoError(t, store.ClearTokens())
	_, _, ok = store.Tokens()
	require.False(t, ok)
}

func TestProfileCacheRoundtrip(t *testing.T) {
	store := newTestStore(t)

	cached, err := store.Get(KeyProfile)
	require.NoError(t, err)
	require.Empty(t, cached)

	payload := `{"id":1,"name":"Sara","email":"sara@example.com"}`
	require.NoError(t, store.Set(KeyProfile, payload))

	cached, err = store.Get(KeyProfile)
	require.NoError(t, err)
	require.Equal(t, payload, cached)
}

func TestLanguageDefaultsToEnglish(t *testing.T) {
	store := newTestStore(t)
	require.Equal(t, "en", store.Language())

	require.NoError(t, store.SetLanguage("ar"))
	require.Equal(t, "ar", store.Language())
}
