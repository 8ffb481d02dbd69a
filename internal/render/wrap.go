package render

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap word-wraps text to width, keeping paragraph breaks and manual line
// breaks. A width of zero or less returns the text unchanged.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	wrappedParagraphs := make([]string, 0, len(paragraphs))

	for _, paragraph := range paragraphs {
		lines := strings.Split(paragraph, "\n")
		wrappedLines := make([]string, 0, len(lines))

		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				wrappedLines = append(wrappedLines, "")
				continue
			}
			wrappedLines = append(wrappedLines, wordwrap.String(line, width))
		}

		wrappedParagraphs = append(wrappedParagraphs, strings.Join(wrappedLines, "\n"))
	}

	return strings.Join(wrappedParagraphs, "\n\n")
}
