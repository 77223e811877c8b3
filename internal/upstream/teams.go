package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// TeamsResult lists the teams attached to one repository.
type TeamsResult struct {
	Repo      string   `json:"repo"`
	Teams     []string `json:"teams"`
	TeamCount int      `json:"team_count"`
	Timestamp string   `json:"timestamp"`
	Success   bool     `json:"success"`
}

// TeamsClient reads repository team assignments from the GitHub API.
type TeamsClient struct {
	conn
	endpoint string
	token    string
	org      string
}

// NewTeamsClient builds a client for the given GitHub endpoint, bearer
// token, and organization. Any of them may be empty; calls then fail with a
// configuration message before any network activity.
func NewTeamsClient(endpoint, token, org string, opts ...ClientOption) *TeamsClient {
	c := &TeamsClient{
		conn:     defaultConn(),
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		org:      org,
	}
	for _, opt := range opts {
		opt(&c.conn)
	}
	return c
}

// RepoTeams returns the names of the teams granted access to the given
// repository. Response entries without a name are dropped.
func (c *TeamsClient) RepoTeams(ctx context.Context, repoSlug string) (*TeamsResult, error) {
	if c.endpoint == "" {
		return nil, configError("GITHUB_API_ENDPOINT not configured")
	}
	if c.token == "" {
		return nil, configError("GITHUB_BEARER_TOKEN not configured")
	}
	if c.org == "" {
		return nil, configError("GITHUB_ORG_NAME not configured")
	}

	c.logger.Debug("fetching repo teams", "repo", repoSlug)

	target := fmt.Sprintf("%s/repos/%s/%s/teams", c.endpoint, url.PathEscape(c.org), url.PathEscape(repoSlug))
	raw, header, apiErr := c.get(ctx, target, c.token)
	if apiErr != nil {
		return nil, apiErr
	}

	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, malformedError()
	}

	names := []string{}
	if items, ok := parsed.([]interface{}); ok {
		for _, item := range items {
			fields, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if name, ok := fields["name"].(string); ok {
				names = append(names, name)
			}
		}
	}

	return &TeamsResult{
		Repo:      repoSlug,
		Teams:     names,
		TeamCount: len(names),
		Timestamp: headerDate(header),
		Success:   true,
	}, nil
}
