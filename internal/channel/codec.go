package channel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidEnvelope is returned when a reply is neither a success nor an
// error envelope.
var ErrInvalidEnvelope = errors.New("invalid envelope")

// MethodCall is a single invocation delivered on a method channel.
type MethodCall struct {
	Method    string          `json:"method"`
	Arguments json.RawMessage `json:"args,omitempty"`

	// ID identifies the message that carried the call (for logs only).
	ID string `json:"-"`
}

// MethodCodec encodes method calls and their result envelopes.
type MethodCodec interface {
	EncodeMethodCall(call *MethodCall) ([]byte, error)
	DecodeMethodCall(data []byte) (*MethodCall, error)
	EncodeSuccessEnvelope(result any) ([]byte, error)
	EncodeErrorEnvelope(code, message string, details any) ([]byte, error)

	// DecodeEnvelope returns the result of a success envelope, or an *Error
	// for an error envelope.
	DecodeEnvelope(data []byte) (json.RawMessage, error)
}

// JSONMethodCodec is the JSON method codec:
//
//	call:    {"method": "name", "args": ...}
//	success: [result]
//	error:   ["code", "message", details]
type JSONMethodCodec struct{}

// EncodeMethodCall implements MethodCodec.
func (JSONMethodCodec) EncodeMethodCall(call *MethodCall) ([]byte, error) {
	if call == nil || call.Method == "" {
		return nil, fmt.Errorf("method call requires a method name")
	}
	return json.Marshal(call)
}

// DecodeMethodCall implements MethodCodec.
func (JSONMethodCodec) DecodeMethodCall(data []byte) (*MethodCall, error) {
	var call MethodCall
	if err := json.Unmarshal(data, &call); err != nil {
		return nil, fmt.Errorf("failed to decode method call: %w", err)
	}
	if call.Method == "" {
		return nil, fmt.Errorf("method call has no method name")
	}
	return &call, nil
}

// EncodeSuccessEnvelope implements MethodCodec.
func (JSONMethodCodec) EncodeSuccessEnvelope(result any) ([]byte, error) {
	return json.Marshal([]any{result})
}

// EncodeErrorEnvelope implements MethodCodec.
func (JSONMethodCodec) EncodeErrorEnvelope(code, message string, details any) ([]byte, error) {
	return json.Marshal([]any{code, message, details})
}

// DecodeEnvelope implements MethodCodec.
func (JSONMethodCodec) DecodeEnvelope(data []byte) (json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	switch len(parts) {
	case 1:
		return parts[0], nil
	case 3:
		e := &Error{}
		if err := json.Unmarshal(parts[0], &e.Code); err != nil {
			return nil, fmt.Errorf("%w: error code is not a string", ErrInvalidEnvelope)
		}
		// Message may be null
		var msg *string
		if err := json.Unmarshal(parts[1], &msg); err != nil {
			return nil, fmt.Errorf("%w: error message is not a string", ErrInvalidEnvelope)
		}
		if msg != nil {
			e.Message = *msg
		}
		if string(parts[2]) != "null" {
			e.Details = parts[2]
		}
		return nil, e
	default:
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidEnvelope, len(parts))
	}
}
