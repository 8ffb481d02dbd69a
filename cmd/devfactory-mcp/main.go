// Package main is the entry point for the devfactory-mcp CLI.
//
// devfactory-mcp bundles the stdio MCP servers used by the dev-factory
// editor extensions:
//
//   - theme: design token documentation (list, get, search)
//   - kit: UI kit component documentation (list, get, search)
//   - image-utils: saves base64 images to disk
//
// Each server reads newline-delimited JSON-RPC from stdin and writes
// responses to stdout. Logs never go to stdout; they go to stderr, or to
// devfactory-mcp.log in the working directory when --debug or DEBUG is set.
//
// The tools and call subcommands of every server run the same registry
// outside of an MCP client, for inspecting docs from a terminal.
package main

func main() {
	Execute()
}
