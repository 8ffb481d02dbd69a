package mcpserver

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

// LineReader splits a byte stream into newline-delimited messages.
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	// bufio.Reader instead of bufio.Scanner: no maximum token size.
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next non-blank line with surrounding whitespace removed.
// A last line without a trailing newline is still returned; io.EOF follows.
func (lr *LineReader) Next() (string, error) {
	for {
		line, err := lr.r.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if err != nil {
			if errors.Is(err, io.EOF) && trimmed != "" {
				return trimmed, nil
			}
			return "", err
		}
		if trimmed == "" {
			continue
		}
		return trimmed, nil
	}
}

// LineWriter writes one message per line. WriteLine is safe for concurrent
// use; each call is a single locked write followed by a flush, so lines
// from racing handlers never interleave.
type LineWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(w)}
}

func (lw *LineWriter) WriteLine(payload []byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, err := lw.w.Write(payload); err != nil {
		return err
	}
	if err := lw.w.WriteByte('\n'); err != nil {
		return err
	}
	return lw.w.Flush()
}
