package chat

import (
	"sync"
	"time"
)

// Reveal plays a fully-received response into an assistant placeholder
// one rune per tick, so the UI shows the text being "typed". The final
// tick writes the complete text and clears the typing flag; cancelling
// stops playback and leaves whatever prefix was already shown.
type Reveal struct {
	store          *Store
	conversationID int64
	messageID      string
	text           []rune
	interval       time.Duration

	cancelOnce sync.Once
	stop       chan struct{}
	done       chan struct{}
}

func newReveal(store *Store, conversationID int64, messageID, text string, interval time.Duration) *Reveal {
	return &Reveal{
		store:          store,
		conversationID: conversationID,
		messageID:      messageID,
		text:           []rune(text),
		interval:       interval,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// start begins playback. Each reveal owns its own ticker and targets
// its own placeholder ID, so overlapping reveals in different
// conversations don't interfere.
func (r *Reveal) start() {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for index := 0; index <= len(r.text); {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.store.updateMessage(r.conversationID, r.messageID, string(r.text[:index]), true)
				index++
			}
		}
		r.store.updateMessage(r.conversationID, r.messageID, string(r.text), false)
	}()
}

// Cancel stops playback. Safe to call more than once.
func (r *Reveal) Cancel() {
	r.cancelOnce.Do(func() { close(r.stop) })
}

// Done is closed once playback has finished or been cancelled.
func (r *Reveal) Done() <-chan struct{} {
	return r.done
}
