package render

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// DetectGlamourStyle returns GLAMOUR_STYLE when it names a concrete style,
// otherwise asks the terminal for its background through termenv. Terminals
// that do not answer within timeout get "dark".
func DetectGlamourStyle(timeout time.Duration) string {
	defaultStyle := "dark"

	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	type result struct{ style string }
	ch := make(chan result, 1)

	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- result{style: "dark"}
			return
		}
		ch <- result{style: "light"}
	}()

	select {
	case r := <-ch:
		return r.style
	case <-time.After(timeout):
		return defaultStyle
	}
}

// Markdown renders content for the terminal with the given glamour style.
// Use style "notty" for plain output.
func Markdown(content, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
