package mcp

import "encoding/json"

// Version is the Model Context Protocol version
const Version = "2024-11-05"

// Initialize
type (
	// ServerCapabilities represents the server's supported capabilities
	ServerCapabilities struct {
		Tools *ToolCapabilities `json:"tools,omitempty"`
	}

	// ToolCapabilities describes the server's tool support
	ToolCapabilities struct {
		ListChanged bool `json:"listChanged"`
	}

	// ServerInfo represents information about an MCP implementation
	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}

	// InitializeResponse represents the server's response to an initialize request
	InitializeResponse struct {
		ProtocolVersion string             `json:"protocolVersion"`
		Capabilities    ServerCapabilities `json:"capabilities"`
		ServerInfo      ServerInfo         `json:"serverInfo"`
		Instructions    string             `json:"instructions,omitempty"`
	}
)

// Tools
type (
	// ToolsListResponse represents the response for the tools/list method
	ToolsListResponse struct {
		Tools []Tool `json:"tools"`
	}

	// ToolCallParams represents the parameters for the tools/call method
	ToolCallParams struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}
)
