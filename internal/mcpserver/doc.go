// Package mcpserver is a minimal Model Context Protocol server over
// newline-delimited JSON-RPC 2.0.
//
// A Server reads one message per line, answers initialize, tools/list,
// tools/call and ping, and stays silent for notifications. Each tools/call
// runs in its own goroutine, so responses can be written in a different
// order than the requests arrived; clients correlate them by id.
//
// Input schemas attached to tools are advertised through tools/list only.
// Arguments are handed to handlers as received and each handler checks what
// it needs.
package mcpserver
