package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/deckhand-ai/deckhand/jsonrpc"
)

// Transport reads JSON-RPC requests one line at a time from an input
// stream and writes one response line per request.
type Transport struct {
	scanner *bufio.Scanner
	writer  *json.Encoder
	bufOut  *bufio.Writer
	errOut  io.Writer
}

// NewStdioTransport creates a new stdio transport
func NewStdioTransport(in io.Reader, out io.Writer, errOut io.Writer) *Transport {
	scanner := bufio.NewScanner(in)
	// Set a reasonable max size for each line
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	bufOut := bufio.NewWriter(out)
	return &Transport{
		scanner: scanner,
		writer:  json.NewEncoder(bufOut),
		bufOut:  bufOut,
		errOut:  errOut,
	}
}

// Run reads requests until the stream ends or ctx is canceled, passing
// each to handle and writing its response before reading the next line.
// A line that fails to parse produces a Parse error response with a null
// id and the loop continues. Responses to notifications are suppressed.
func (t *Transport) Run(ctx context.Context, handle jsonrpc.HandlerFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if !t.scanner.Scan() {
				if err := t.scanner.Err(); err != nil {
					return fmt.Errorf("scanner error: %v", err)
				}
				return nil
			}

			line := t.scanner.Text()
			if line == "" {
				continue
			}

			var request jsonrpc.Request
			if err := json.Unmarshal([]byte(line), &request); err != nil {
				t.write(jsonrpc.NewResponse(nil, nil, jsonrpc.NewError(jsonrpc.ErrParse, err.Error())))
				continue
			}

			response := handle(ctx, request)
			if request.IsNotification() {
				continue
			}
			t.write(response)
		}
	}
}

// write encodes one response and flushes immediately so the peer
// observes it without delay.
func (t *Transport) write(response jsonrpc.Response) {
	if err := t.writer.Encode(response); err != nil {
		fmt.Fprintf(t.errOut, "Error encoding response: %v\n", err)
	}
	t.bufOut.Flush()
}
