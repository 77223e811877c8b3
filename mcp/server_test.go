package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand-ai/deckhand/jsonrpc"
)

type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) StatusCode() int { return e.status }

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	echoTool := Tool{
		Name:        "echo",
		Description: "Returns its message argument",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"message": {Type: "string", Description: "Text to echo back"},
				"count":   {Type: "integer", Description: "Repeat count"},
				"mode":    {Type: "string", Enum: []interface{}{"plain", "loud"}},
			},
			Required: []string{"message"},
		},
		Handler: func(_ context.Context, args json.RawMessage) (interface{}, error) {
			var in struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return map[string]interface{}{"success": true, "message": in.Message}, nil
		},
	}

	failTool := Tool{
		Name:        "always_fails",
		Description: "Fails with a rate limit error",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Handler: func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			return nil, &statusError{status: 429, msg: "Rate limit exceeded. Please wait and try again."}
		},
	}

	panicTool := Tool{
		Name:        "panics",
		Description: "Panics when called",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Handler: func(_ context.Context, _ json.RawMessage) (interface{}, error) {
			panic("unreachable state")
		},
	}

	server, err := NewServer(
		WithServerInfo("deckhand-test", "0.0.1"),
		WithTools(echoTool, failTool, panicTool),
	)
	require.NoError(t, err)

	return server
}

func TestServer_HandleInitialize(t *testing.T) {
	server := setupTestServer(t)

	request := jsonrpc.NewRequest("initialize", json.RawMessage(`{}`), 1)
	response := server.Handle(context.Background(), request)

	assert.Equal(t, "2.0", response.Version)
	assert.Equal(t, 1, response.ID.Value())
	assert.Nil(t, response.Error)

	var result InitializeResponse
	resultBytes, err := json.Marshal(response.Result)
	require.NoError(t, err)
	err = json.Unmarshal(resultBytes, &result)
	require.NoError(t, err)

	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, "deckhand-test", result.ServerInfo.Name)
	assert.Equal(t, "0.0.1", result.ServerInfo.Version)
	require.NotNil(t, result.Capabilities.Tools)
	assert.False(t, result.Capabilities.Tools.ListChanged)
}

func TestServer_HandlePing(t *testing.T) {
	server := setupTestServer(t)

	response := server.Handle(context.Background(), jsonrpc.NewRequest("ping", nil, 7))

	assert.Nil(t, response.Error)
	resultBytes, err := json.Marshal(response.Result)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(resultBytes))
}

func TestHandleToolsList(t *testing.T) {
	server := setupTestServer(t)

	request := jsonrpc.NewRequest("tools/list", nil, 1)
	response := server.Handle(context.Background(), request)

	assert.Equal(t, "2.0", response.Version)
	assert.Equal(t, 1, response.ID.Value())
	assert.Nil(t, response.Error)

	var toolsResp ToolsListResponse
	resultBytes, err := json.Marshal(response.Result)
	require.NoError(t, err)
	err = json.Unmarshal(resultBytes, &toolsResp)
	require.NoError(t, err)

	require.Len(t, toolsResp.Tools, 3)

	var echo Tool
	for _, tool := range toolsResp.Tools {
		if tool.Name == "echo" {
			echo = tool
		}
	}
	assert.Equal(t, "echo", echo.Name)
	assert.Equal(t, "Returns its message argument", echo.Description)
	require.NotNil(t, echo.InputSchema)
	assert.Equal(t, "object", echo.InputSchema.Type)
	assert.Contains(t, echo.InputSchema.Properties, "message")
	assert.Equal(t, []string{"message"}, echo.InputSchema.Required)
}

func TestHandleToolsCall(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name     string
		request  jsonrpc.Request
		validate func(*testing.T, jsonrpc.Response)
	}{
		{
			name:    "successful call",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "echo", "arguments": {"message": "hello"}}`), 1),
			validate: func(t *testing.T, response jsonrpc.Response) {
				assert.Equal(t, 1, response.ID.Value())
				require.Nil(t, response.Error)

				var result map[string]interface{}
				resultBytes, err := json.Marshal(response.Result)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(resultBytes, &result))

				assert.Equal(t, true, result["success"])
				assert.Equal(t, "hello", result["message"])
			},
		},
		{
			name:    "unknown tool",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "nonexistent", "arguments": {}}`), 2),
			validate: func(t *testing.T, response jsonrpc.Response) {
				assert.Equal(t, 2, response.ID.Value())
				require.NotNil(t, response.Error)
				assert.Equal(t, jsonrpc.ErrMethodNotFound, response.Error.Code)
				assert.Equal(t, "Method not found", response.Error.Message)
			},
		},
		{
			name:    "missing required argument",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "echo", "arguments": {}}`), 3),
			validate: func(t *testing.T, response jsonrpc.Response) {
				require.NotNil(t, response.Error)
				assert.Equal(t, jsonrpc.ErrInvalidParams, response.Error.Code)
				assert.Contains(t, response.Error.Data, "message")
			},
		},
		{
			name:    "wrong argument type",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "echo", "arguments": {"message": 5}}`), 4),
			validate: func(t *testing.T, response jsonrpc.Response) {
				require.NotNil(t, response.Error)
				assert.Equal(t, jsonrpc.ErrInvalidParams, response.Error.Code)
			},
		},
		{
			name:    "non-integer count",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "echo", "arguments": {"message": "x", "count": 1.5}}`), 5),
			validate: func(t *testing.T, response jsonrpc.Response) {
				require.NotNil(t, response.Error)
				assert.Equal(t, jsonrpc.ErrInvalidParams, response.Error.Code)
			},
		},
		{
			name:    "enum violation",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "echo", "arguments": {"message": "x", "mode": "quiet"}}`), 6),
			validate: func(t *testing.T, response jsonrpc.Response) {
				require.NotNil(t, response.Error)
				assert.Equal(t, jsonrpc.ErrInvalidParams, response.Error.Code)
			},
		},
		{
			name:    "handler failure becomes semantic failure payload",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "always_fails", "arguments": {}}`), 7),
			validate: func(t *testing.T, response jsonrpc.Response) {
				assert.Equal(t, 7, response.ID.Value())
				require.Nil(t, response.Error)

				var result map[string]interface{}
				resultBytes, err := json.Marshal(response.Result)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(resultBytes, &result))

				assert.Equal(t, false, result["success"])
				assert.Equal(t, "Rate limit exceeded. Please wait and try again.", result["error"])
				assert.Equal(t, float64(429), result["status_code"])
			},
		},
		{
			name:    "handler panic is recovered",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`{"name": "panics", "arguments": {}}`), 8),
			validate: func(t *testing.T, response jsonrpc.Response) {
				require.Nil(t, response.Error)

				var result map[string]interface{}
				resultBytes, err := json.Marshal(response.Result)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(resultBytes, &result))

				assert.Equal(t, false, result["success"])
				assert.Equal(t, "internal error", result["error"])
			},
		},
		{
			name:    "malformed params",
			request: jsonrpc.NewRequest("tools/call", json.RawMessage(`"echo"`), 9),
			validate: func(t *testing.T, response jsonrpc.Response) {
				require.NotNil(t, response.Error)
				assert.Equal(t, jsonrpc.ErrInvalidParams, response.Error.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := server.Handle(context.Background(), tt.request)
			tt.validate(t, response)
		})
	}
}

func TestHandleInvalidMethod(t *testing.T) {
	server := setupTestServer(t)

	request := jsonrpc.NewRequest("invalid/method", nil, 1)
	response := server.Handle(context.Background(), request)

	assert.Equal(t, "2.0", response.Version)
	assert.Equal(t, 1, response.ID.Value())
	require.NotNil(t, response.Error)
	assert.Equal(t, jsonrpc.ErrMethodNotFound, response.Error.Code)
	assert.Equal(t, "Method not found", response.Error.Message)
}

func TestHandleNotification(t *testing.T) {
	server := setupTestServer(t)

	request := jsonrpc.NewRequest("notifications/initialized", nil, nil)
	response := server.Handle(context.Background(), request)

	// The transport never writes this response; it only has to be well formed.
	assert.Nil(t, response.Error)
}

func TestNewServerCatalogValidation(t *testing.T) {
	handler := func(_ context.Context, _ json.RawMessage) (interface{}, error) {
		return nil, nil
	}

	tests := []struct {
		name    string
		opts    []ServerOption
		wantErr string
	}{
		{
			name: "duplicate tool name",
			opts: []ServerOption{WithTools(
				Tool{Name: "dup", Handler: handler},
				Tool{Name: "dup", Handler: handler},
			)},
			wantErr: "duplicate tool",
		},
		{
			name:    "empty tool name",
			opts:    []ServerOption{WithTools(Tool{Handler: handler})},
			wantErr: "empty name",
		},
		{
			name:    "missing handler",
			opts:    []ServerOption{WithTools(Tool{Name: "nohandler"})},
			wantErr: "no handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServer(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
