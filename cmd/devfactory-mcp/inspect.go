package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"devfactory/internal/mcpserver"
	"devfactory/internal/render"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newToolsCmd(server string, setup serverSetup) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools this server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, cleanup, err := setup(newLogger(server))
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprint(out, render.ToolList(server, registry.Tools(), terminalWidth(out)))
			return nil
		},
	}
}

func newCallCmd(server string, setup serverSetup) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "call <tool> [key=value | key:=json ...]",
		Short: "Invoke one tool and print its result",
		Long: `Invoke one tool through the server's registry and render the result as markdown.

Arguments are key=value pairs passed as strings. Use key:=json to pass a raw
JSON value, for example limit:=10.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments, err := parseToolArgs(args[1:])
			if err != nil {
				return err
			}

			registry, cleanup, err := setup(newLogger(server))
			if err != nil {
				return err
			}
			defer cleanup()

			request := mcp.CallToolRequest{}
			request.Method = mcpserver.MethodToolsCall.String()
			request.Params.Name = args[0]
			request.Params.Arguments = arguments

			result, err := registry.Invoke(cmd.Context(), request)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			style := "notty"
			if !plain && termenv.NewOutput(out).Profile != termenv.Ascii {
				style = render.DetectGlamourStyle(50 * time.Millisecond)
			}
			rendered, err := render.ToolResult(result, style, terminalWidth(out))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)

			if result.IsError {
				return fmt.Errorf("tool %s reported an error", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print without colors or markdown styling")
	return cmd
}

// parseToolArgs turns key=value and key:=json pairs into a tool arguments
// object. Later keys overwrite earlier ones.
func parseToolArgs(pairs []string) (map[string]any, error) {
	arguments := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		if key, raw, ok := strings.Cut(pair, ":="); ok && key != "" && !strings.Contains(key, "=") {
			var value any
			if err := json.Unmarshal([]byte(raw), &value); err != nil {
				return nil, fmt.Errorf("argument %q: invalid JSON value: %w", key, err)
			}
			arguments[key] = value
			continue
		}

		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q: expected key=value", pair)
		}
		arguments[key] = value
	}
	return arguments, nil
}

// terminalWidth is the width of w when it is a terminal, DefaultWidth
// otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return render.DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return render.DefaultWidth
	}
	return width
}
