package validation

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// ValidateMarkdown checks that content looks like a usable documentation
// page. Returns nil if valid, or an error describing the problem.
func ValidateMarkdown(content []byte) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return fmt.Errorf("file is empty")
	}
	if !utf8.Valid(content) {
		return fmt.Errorf("file is not valid UTF-8")
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return fmt.Errorf("file contains NUL bytes")
	}

	first, _, _ := bytes.Cut(content, []byte("\n"))
	if len(bytes.TrimSpace(first)) == 0 {
		return fmt.Errorf("first line (title/description) is empty")
	}
	return nil
}
