package jsonrpc

import "context"

// HandlerFunc processes a single JSON-RPC request and produces its response.
// The context is the session context; it is canceled when the process is
// shutting down.
type HandlerFunc func(ctx context.Context, request Request) Response
