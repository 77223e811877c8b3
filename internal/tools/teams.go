package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/deckhand-ai/deckhand/internal/upstream"
	"github.com/deckhand-ai/deckhand/mcp"
)

type repoTeamsArgs struct {
	RepoSlug string `json:"repo_slug"`
}

// TeamTools returns the repository tools backed by client.
func TeamTools(client *upstream.TeamsClient) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "get_repoteams",
			Description: "Retrieve the teams associated with a specific repository.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"repo_slug": {
						Type:        "string",
						Description: "The repository slug, without the organization prefix",
					},
				},
				Required: []string{"repo_slug"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args repoTeamsArgs
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("decoding arguments: %w", err)
				}

				result, err := client.RepoTeams(ctx, args.RepoSlug)
				if err != nil {
					return nil, err
				}
				return result, nil
			},
		},
	}
}
