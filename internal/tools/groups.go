package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/deckhand-ai/deckhand/internal/upstream"
	"github.com/deckhand-ai/deckhand/mcp"
)

type listGroupsArgs struct {
	Page   *int   `json:"page"`
	Limit  *int   `json:"limit"`
	Search string `json:"search"`
}

type userCountArgs struct {
	GroupID string `json:"group_id"`
}

// GroupTools returns the group directory tools backed by client.
func GroupTools(client *upstream.GroupsClient) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "get_groups",
			Description: "Retrieve groups from the API with pagination and optional search.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"page": {
						Type:        "integer",
						Description: "Page number to retrieve (default: 1)",
					},
					"limit": {
						Type:        "integer",
						Description: "Number of groups per page, 1 to 100 (default: 10)",
					},
					"search": {
						Type:        "string",
						Description: "Optional search term to filter groups by name",
					},
				},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args listGroupsArgs
				if len(raw) > 0 {
					if err := json.Unmarshal(raw, &args); err != nil {
						return nil, fmt.Errorf("decoding arguments: %w", err)
					}
				}

				query := upstream.Query{Page: 1, Limit: 10, Search: args.Search}
				if args.Page != nil {
					query.Page = max(1, *args.Page)
				}
				if args.Limit != nil {
					query.Limit = min(max(1, *args.Limit), 100)
				}

				result, err := client.Fetch(ctx, query)
				if err != nil {
					return nil, err
				}
				return result, nil
			},
		},
		{
			Name:        "get_usercount",
			Description: "Get the number of members in a specific group.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"group_id": {
						Type:        "string",
						Description: "The ID of the group to count members for",
					},
				},
				Required: []string{"group_id"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
				var args userCountArgs
				if err := json.Unmarshal(raw, &args); err != nil {
					return nil, fmt.Errorf("decoding arguments: %w", err)
				}

				if strings.TrimSpace(args.GroupID) == "" {
					return nil, errors.New("group_id parameter is required and cannot be empty")
				}

				result, err := client.MemberCount(ctx, args.GroupID)
				if err != nil {
					return nil, err
				}
				return result, nil
			},
		},
	}
}
