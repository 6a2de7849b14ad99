package frame

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Writer writes frames to a stream. It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	writer *bufio.Writer
}

// NewWriter creates a new frame writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: bufio.NewWriter(w)}
}

// WriteFrame writes f and flushes it.
func (w *Writer) WriteFrame(f *Frame) error {
	if strings.ContainsAny(f.Channel, "\r\n") || strings.ContainsAny(f.ID, "\r\n") {
		return fmt.Errorf("frame fields must not contain line breaks")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if f.Channel != "" {
		fmt.Fprintf(w.writer, "channel: %s\n", f.Channel)
	}
	if f.ID != "" {
		fmt.Fprintf(w.writer, "id: %s\n", f.ID)
	}
	if len(f.Data) > 0 {
		for _, line := range strings.Split(string(f.Data), "\n") {
			fmt.Fprintf(w.writer, "data: %s\n", line)
		}
	}
	w.writer.WriteString("\n")

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}
