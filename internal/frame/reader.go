// Package frame reads and writes line-framed channel messages:
//
//	channel: vertical_scrolling_calendar
//	id: 1
//	data: {"method":"getPlatformVersion"}
//
// A blank line ends a frame. Lines starting with ':' are comments.
package frame

import (
	"bufio"
	"io"
	"strings"
)

// Frame is one message addressed to a channel.
type Frame struct {
	Channel string
	ID      string
	Data    []byte
}

// Reader reads frames from a stream.
type Reader struct {
	reader *bufio.Reader
	done   bool
}

// NewReader creates a new frame reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		reader: bufio.NewReader(r),
	}
}

// ReadFrame reads the next frame. Returns io.EOF when the stream ends.
func (r *Reader) ReadFrame() (*Frame, error) {
	if r.done {
		return nil, io.EOF
	}

	var frame Frame
	var dataLines []string
	seen := false

	for {
		line, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		eof := err == io.EOF

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == "":
			// Empty line signals end of frame
			if seen {
				return build(&frame, dataLines), nil
			}
		case strings.HasPrefix(line, ":"):
			// Comment
		case strings.HasPrefix(line, "channel:"):
			frame.Channel = fieldValue(line, "channel:")
			seen = true
		case strings.HasPrefix(line, "id:"):
			frame.ID = fieldValue(line, "id:")
			seen = true
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, fieldValue(line, "data:"))
			seen = true
		}

		if eof {
			r.done = true
			if seen {
				return build(&frame, dataLines), nil
			}
			return nil, io.EOF
		}
	}
}

func fieldValue(line, field string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, field))
}

func build(frame *Frame, dataLines []string) *Frame {
	if len(dataLines) > 0 {
		frame.Data = []byte(strings.Join(dataLines, "\n"))
	}
	return frame
}
