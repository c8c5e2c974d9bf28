package debug

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// GetLogger returns a singleton zerolog logger writing to a debug file.
// The TUI owns stdout, so nothing may ever log there.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		path := filepath.Join(os.TempDir(), "hiwar-debug.log")
		if home, err := os.UserHomeDir(); err == nil {
			dir := filepath.Join(home, ".hiwar")
			if err := os.MkdirAll(dir, 0755); err == nil {
				path = filepath.Join(dir, "debug.log")
			}
		}
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			logger = zerolog.Nop()
			return
		}
		zerolog.TimeFieldFormat = time.RFC3339
		logger = zerolog.New(f).With().Timestamp().Caller().Logger()
	})
	return logger
}
