// Package whatsapp delivers best-effort contact notifications over a
// long-lived WhatsApp Web session. The session authenticates asynchronously
// at startup; requests arriving before it reaches Ready have their
// notification dropped, never queued. This startup race is accepted behavior.
package whatsapp

import (
	"context"
	"strings"
	"sync/atomic"

	"go-portfolio-backend/pkg/logger"
)

// State of the session lifecycle.
type State int32

const (
	// StateInitializing: session constructed, handshake in progress.
	StateInitializing State = iota
	// StateAwaitingAuth: a pairing QR code has been rendered for the operator.
	StateAwaitingAuth
	// StateReady: authenticated; sends permitted.
	StateReady
	// StateFailed: terminal; a new session is required to recover.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAwaitingAuth:
		return "awaiting_auth"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Sender is the narrow seam over the underlying session client.
type Sender interface {
	SendText(ctx context.Context, chatID, text string) error
}

// Dispatcher sends advisory notifications to one destination. All failures
// are absorbed here; Notify has no return value by design.
type Dispatcher struct {
	send  Sender
	state atomic.Int32
}

func NewDispatcher(send Sender) *Dispatcher {
	d := &Dispatcher{send: send}
	d.state.Store(int32(StateInitializing))
	return d
}

func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Ready reports whether the session has completed authentication.
func (d *Dispatcher) Ready() bool {
	return d.State() == StateReady
}

// markAwaitingAuth records that a pairing artifact was emitted. Only valid
// from Initializing; repeated QR refreshes keep the state.
func (d *Dispatcher) markAwaitingAuth() {
	if d.state.CompareAndSwap(int32(StateInitializing), int32(StateAwaitingAuth)) {
		logger.Log.Info("whatsapp session awaiting pairing, scan the QR code")
	}
}

// markReady is the one-shot ready transition. Once set the session is assumed
// ready for the process lifetime.
func (d *Dispatcher) markReady() {
	if d.state.CompareAndSwap(int32(StateInitializing), int32(StateReady)) ||
		d.state.CompareAndSwap(int32(StateAwaitingAuth), int32(StateReady)) {
		logger.Log.Info("whatsapp session ready")
	}
}

// markFailed records an irrecoverable session error. There is no reconnect
// loop; the operator must restart the process to re-pair.
func (d *Dispatcher) markFailed() {
	prev := State(d.state.Swap(int32(StateFailed)))
	if prev != StateFailed {
		logger.Log.Error("whatsapp session failed", "previous_state", prev.String())
	}
}

// Notify sends message to phoneNumber. Not-ready sessions drop the
// notification immediately; send failures are logged and swallowed.
func (d *Dispatcher) Notify(ctx context.Context, phoneNumber, message string) {
	if !d.Ready() {
		logger.Log.Warn("whatsapp session not ready, dropping notification", "state", d.State().String())
		return
	}

	chatID := ChatID(phoneNumber)
	if err := d.send.SendText(ctx, chatID, message); err != nil {
		logger.Log.Error("failed to send whatsapp message", "error", err, "chat_id", chatID)
	}
}

// ChatID normalizes a phone number into a WhatsApp chat identifier: every
// non-digit character is stripped and the recipient suffix appended.
func ChatID(phoneNumber string) string {
	var digits strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String() + "@c.us"
}
