// Package tools defines the server's tool catalog: each tool pairs a JSON
// schema for its arguments with a handler that runs the operation and
// returns the payload the caller sees.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/deckhand-ai/deckhand/internal/dirlist"
	"github.com/deckhand-ai/deckhand/internal/hostpath"
	"github.com/deckhand-ai/deckhand/mcp"
)

type listFilesArgs struct {
	FolderPath string `json:"folder_path"`
}

// FileTools returns the filesystem tools, with raw paths mapped through
// the given resolver before listing.
func FileTools(resolver hostpath.Resolver) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list_files",
			Description: "List all files and directories in the specified folder path.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"folder_path": {
						Type:        "string",
						Description: "The absolute or relative path to the directory to list",
					},
				},
				Required: []string{"folder_path"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args listFilesArgs
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("decoding arguments: %w", err)
				}

				resolved, err := resolver.Resolve(args.FolderPath)
				if err != nil {
					// A path that cannot be resolved degrades to the same
					// failure shape a bad listing would produce.
					return dirlist.Failure(args.FolderPath, err.Error()), nil
				}
				return dirlist.List(resolved), nil
			},
		},
	}
}
