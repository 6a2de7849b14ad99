// Package host runs the host side of the channel boundary over a byte
// stream: frames in, replies out.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/edgard/platformbridge/internal/channel"
	"github.com/edgard/platformbridge/internal/frame"
)

// CodeSendFailed is the error code written when the messenger rejects a
// frame for a reason other than a missing handler.
const CodeSendFailed = "send_failed"

// Serve reads frames from in, delivers each to messenger, and writes a reply
// frame with the same channel and id to out. A reply frame without data
// means the call was not handled. Returns nil at end of input, or the
// context's error when ctx is canceled.
func Serve(ctx context.Context, in io.Reader, out io.Writer, messenger channel.BinaryMessenger) error {
	reader := frame.NewReader(in)
	writer := frame.NewWriter(out)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan *frame.Frame)
	readErr := make(chan error, 1)
	go func() {
		for {
			f, err := reader.ReadFrame()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read frame: %w", err)
		case f := <-frames:
			if err := writer.WriteFrame(dispatch(ctx, messenger, f)); err != nil {
				return err
			}
		}
	}
}

// dispatch delivers f and builds the reply frame.
func dispatch(ctx context.Context, messenger channel.BinaryMessenger, f *frame.Frame) *frame.Frame {
	id := f.ID
	if id == "" {
		id = uuid.NewString()
	}

	reply, err := messenger.Send(channel.WithMessageID(ctx, id), f.Channel, f.Data)
	if err != nil {
		code := CodeSendFailed
		if errors.Is(err, channel.ErrNoHandler) {
			code = channel.CodeNoHandler
		}
		slog.Warn("message not delivered",
			"message_id", id,
			"channel", f.Channel,
			"error", err,
		)
		reply, _ = channel.JSONMethodCodec{}.EncodeErrorEnvelope(code, err.Error(), nil)
	}

	return &frame.Frame{Channel: f.Channel, ID: id, Data: reply}
}
