package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Result delivers the outcome of a method call. Exactly one of its methods
// should be called, once; later calls are ignored.
type Result interface {
	Success(result any)
	Error(code, message string, details any)
	NotImplemented()
}

// MethodCallHandler handles calls arriving on a method channel.
type MethodCallHandler interface {
	HandleMethodCall(call *MethodCall, result Result)
}

// MethodCallHandlerFunc adapts a function to MethodCallHandler.
type MethodCallHandlerFunc func(call *MethodCall, result Result)

// HandleMethodCall implements MethodCallHandler.
func (f MethodCallHandlerFunc) HandleMethodCall(call *MethodCall, result Result) {
	f(call, result)
}

// MethodChannel is a named channel carrying method calls over a
// BinaryMessenger.
type MethodChannel struct {
	name      string
	messenger BinaryMessenger
	codec     MethodCodec
}

// NewMethodChannel creates a method channel. The name must match the name
// used on the other side of the messenger.
func NewMethodChannel(name string, messenger BinaryMessenger, codec MethodCodec) *MethodChannel {
	if codec == nil {
		codec = JSONMethodCodec{}
	}
	return &MethodChannel{
		name:      name,
		messenger: messenger,
		codec:     codec,
	}
}

// Name returns the channel name.
func (c *MethodChannel) Name() string {
	return c.name
}

// SetMethodCallHandler installs h as the channel's sole handler.
// A nil h removes it.
func (c *MethodChannel) SetMethodCallHandler(h MethodCallHandler) {
	if h == nil {
		c.messenger.SetMessageHandler(c.name, nil)
		return
	}
	c.messenger.SetMessageHandler(c.name, func(ctx context.Context, message []byte) []byte {
		call, err := c.codec.DecodeMethodCall(message)
		if err != nil {
			slog.Warn("undecodable method call",
				"channel", c.name,
				"message_id", MessageID(ctx),
				"error", err,
			)
			data, _ := c.codec.EncodeErrorEnvelope(CodeBadCall, err.Error(), nil)
			return data
		}
		call.ID = MessageID(ctx)

		r := &reply{channel: c.name, method: call.Method, codec: c.codec}
		h.HandleMethodCall(call, r)
		return r.data
	})
}

// InvokeMethod sends a call to the handler on the other side and decodes
// its reply. Error envelopes come back as *Error; a declined call as
// ErrNotImplemented.
func (c *MethodChannel) InvokeMethod(ctx context.Context, method string, args any) (json.RawMessage, error) {
	call := &MethodCall{Method: method}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to encode arguments: %w", err)
		}
		call.Arguments = raw
	}

	message, err := c.codec.EncodeMethodCall(call)
	if err != nil {
		return nil, err
	}

	data, err := c.messenger.Send(ctx, c.name, message)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s on channel %s", ErrNotImplemented, method, c.name)
	}
	return c.codec.DecodeEnvelope(data)
}

// reply is the Result handed to a MethodCallHandler. It records the
// encoded envelope; nil data means not implemented.
type reply struct {
	channel string
	method  string
	codec   MethodCodec
	data    []byte
	done    bool
}

func (r *reply) claim() bool {
	if r.done {
		slog.Warn("method call replied more than once",
			"channel", r.channel,
			"method", r.method,
		)
		return false
	}
	r.done = true
	return true
}

func (r *reply) Success(result any) {
	if !r.claim() {
		return
	}
	data, err := r.codec.EncodeSuccessEnvelope(result)
	if err != nil {
		data, _ = r.codec.EncodeErrorEnvelope(CodeEncode, err.Error(), nil)
	}
	r.data = data
}

func (r *reply) Error(code, message string, details any) {
	if !r.claim() {
		return
	}
	data, err := r.codec.EncodeErrorEnvelope(code, message, details)
	if err != nil {
		data, _ = r.codec.EncodeErrorEnvelope(CodeEncode, err.Error(), nil)
	}
	r.data = data
}

func (r *reply) NotImplemented() {
	if !r.claim() {
		return
	}
	r.data = nil
}
