package launch

import (
	"context"
	"sync"
)

// Handoff carries the chosen command from the picker to the coordinator.
// At most one command is ever delivered. Close ends the coordinator's wait
// without a value when the picker exits without committing.
type Handoff struct {
	ch        chan string
	sendOnce  sync.Once
	closeOnce sync.Once
}

// NewHandoff returns an open handoff.
func NewHandoff() *Handoff {
	return &Handoff{ch: make(chan string, 1)}
}

// Send delivers cmd. Only the first call on a handoff that has not been
// closed delivers anything; it reports whether this call did.
func (h *Handoff) Send(cmd string) bool {
	sent := false
	h.sendOnce.Do(func() {
		h.ch <- cmd
		sent = true
	})
	return sent
}

// Close marks the handoff as finished. A command already sent stays
// receivable; later Sends are dropped. Close is idempotent.
func (h *Handoff) Close() {
	h.sendOnce.Do(func() {})
	h.closeOnce.Do(func() { close(h.ch) })
}

// Wait blocks until a command is sent, the handoff is closed, or ctx ends.
// ok is false when no command was delivered.
func (h *Handoff) Wait(ctx context.Context) (cmd string, ok bool) {
	select {
	case cmd, ok = <-h.ch:
		return cmd, ok
	case <-ctx.Done():
		return "", false
	}
}
