// Package channel implements the messaging layer between a host and its
// plugins: a binary messenger keyed by channel name, and method channels
// that encode calls and replies on top of it.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Context key for the message ID
type contextKey string

const messageIDKey contextKey = "message_id"

// WithMessageID returns a context carrying id as the message ID.
func WithMessageID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, messageIDKey, id)
}

// MessageID retrieves the message ID from context.
func MessageID(ctx context.Context) string {
	if id, ok := ctx.Value(messageIDKey).(string); ok {
		return id
	}
	return ""
}

// MessageHandler handles one message and returns the reply.
// A nil reply means the message was not handled.
type MessageHandler func(ctx context.Context, message []byte) []byte

// BinaryMessenger carries raw messages between host and plugins.
type BinaryMessenger interface {
	// Send delivers message to the handler on channel and returns its reply.
	Send(ctx context.Context, channel string, message []byte) ([]byte, error)

	// SetMessageHandler installs h on channel, replacing any previous
	// handler. A nil h removes the handler.
	SetMessageHandler(channel string, h MessageHandler)
}

// Messenger is an in-process BinaryMessenger. Delivery is synchronous:
// Send returns after the handler has produced its reply.
type Messenger struct {
	mu       sync.RWMutex
	handlers map[string]MessageHandler
}

// NewMessenger creates an empty messenger.
func NewMessenger() *Messenger {
	return &Messenger{
		handlers: make(map[string]MessageHandler),
	}
}

// SetMessageHandler implements BinaryMessenger.
func (m *Messenger) SetMessageHandler(channel string, h MessageHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h == nil {
		delete(m.handlers, channel)
		slog.Debug("channel handler removed", "channel", channel)
		return
	}
	if _, exists := m.handlers[channel]; exists {
		slog.Debug("channel handler replaced", "channel", channel)
	}
	m.handlers[channel] = h
}

// Send implements BinaryMessenger.
func (m *Messenger) Send(ctx context.Context, channel string, message []byte) ([]byte, error) {
	m.mu.RLock()
	h, ok := m.handlers[channel]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, channel)
	}

	id := MessageID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = WithMessageID(ctx, id)
	}

	slog.Debug("message delivered",
		"message_id", id,
		"channel", channel,
		"bytes", len(message),
	)
	return h(ctx, message), nil
}

// Channels returns the names of channels with a handler installed.
func (m *Messenger) Channels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.handlers))
	for name := range m.handlers {
		names = append(names, name)
	}
	return names
}
