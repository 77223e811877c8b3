package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/deckhand-ai/deckhand/jsonrpc"
)

// Server represents an MCP server that processes JSON-RPC requests
// against a fixed catalog of tools.
type Server struct {
	tools  []Tool
	byName map[string]int
	info   ServerInfo
	logger *slog.Logger
}

// ServerOption configures a Server during construction
type ServerOption func(*Server) error

// WithLogger sets the logger used by the server
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithServerInfo sets the name and version reported by initialize
func WithServerInfo(name, version string) ServerOption {
	return func(s *Server) error {
		s.info = ServerInfo{Name: name, Version: version}
		return nil
	}
}

// WithTools adds tools to the server's catalog. The catalog is sealed
// once NewServer returns; there is no registration after startup.
func WithTools(tools ...Tool) ServerOption {
	return func(s *Server) error {
		for _, tool := range tools {
			if tool.Name == "" {
				return fmt.Errorf("tool with empty name")
			}
			if tool.Handler == nil {
				return fmt.Errorf("tool %q has no handler", tool.Name)
			}
			if _, exists := s.byName[tool.Name]; exists {
				return fmt.Errorf("duplicate tool %q", tool.Name)
			}
			s.byName[tool.Name] = len(s.tools)
			s.tools = append(s.tools, tool)
		}
		return nil
	}
}

// NewServer creates a new MCP server instance
func NewServer(opts ...ServerOption) (*Server, error) {
	s := &Server{
		byName: make(map[string]int),
		info:   ServerInfo{Name: "deckhand", Version: "dev"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handle processes a single JSON-RPC request and returns a response.
// The transport discards responses to notifications.
func (s *Server) Handle(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	switch {
	case request.Method == "initialize":
		return s.handleInitialize(request)
	case request.Method == "ping":
		return jsonrpc.NewResponse(request.Id, struct{}{}, nil)
	case request.Method == "tools/list":
		return s.handleToolsList(request)
	case request.Method == "tools/call":
		return s.handleToolsCall(ctx, request)
	case strings.HasPrefix(request.Method, "notifications/"):
		s.logger.Debug("notification received", "method", request.Method)
		return jsonrpc.NewResponse(request.Id, struct{}{}, nil)
	default:
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrMethodNotFound, nil))
	}
}

func (s *Server) handleInitialize(request jsonrpc.Request) jsonrpc.Response {
	result := InitializeResponse{
		ProtocolVersion: Version,
		Capabilities: ServerCapabilities{
			Tools: &ToolCapabilities{ListChanged: false},
		},
		ServerInfo: s.info,
	}
	return jsonrpc.NewResponse(request.Id, result, nil)
}

func (s *Server) handleToolsList(request jsonrpc.Request) jsonrpc.Response {
	tools := make([]Tool, len(s.tools))
	copy(tools, s.tools)
	return jsonrpc.NewResponse(request.Id, ToolsListResponse{Tools: tools}, nil)
}

func (s *Server) handleToolsCall(ctx context.Context, request jsonrpc.Request) jsonrpc.Response {
	var params ToolCallParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}

	idx, ok := s.byName[params.Name]
	if !ok {
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrMethodNotFound, fmt.Sprintf("unknown tool %q", params.Name)))
	}
	tool := s.tools[idx]

	if err := tool.checkArguments(params.Arguments); err != nil {
		return jsonrpc.NewResponse(request.Id, nil, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
	}

	s.logger.Debug("calling tool", "tool", tool.Name)
	result, err := s.invoke(ctx, tool, params.Arguments)
	if err != nil {
		// Domain failures ride inside a successful protocol response so
		// the peer can tell a failed protocol call from a failed operation.
		s.logger.Warn("tool failed", "tool", tool.Name, "error", err)
		return jsonrpc.NewResponse(request.Id, failurePayload(err), nil)
	}

	return jsonrpc.NewResponse(request.Id, result, nil)
}

func (s *Server) invoke(ctx context.Context, tool Tool, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", "tool", tool.Name, "panic", r)
			result = nil
			err = errors.New("internal error")
		}
	}()
	return tool.Handler(ctx, args)
}

// failurePayload shapes a handler error into the semantic failure object
// returned as a protocol-level success.
func failurePayload(err error) map[string]interface{} {
	payload := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code != 0 {
			payload["status_code"] = code
		}
	}
	return payload
}
