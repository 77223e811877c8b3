package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand-ai/deckhand/internal/upstream"
	"github.com/deckhand-ai/deckhand/jsonrpc"
	"github.com/deckhand-ai/deckhand/mcp"
)

func TestGetRepoTeams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/billing-service/teams", r.URL.Path)
		fmt.Fprint(w, `[{"name": "payments", "slug": "payments"}, {"name": "sre"}]`)
	}))
	defer ts.Close()

	client := upstream.NewTeamsClient(ts.URL, "token", "acme")
	tool := findTool(t, TeamTools(client), "get_repoteams")

	result, err := tool.Handler(context.Background(), json.RawMessage(`{"repo_slug": "billing-service"}`))
	require.NoError(t, err)

	teams, ok := result.(*upstream.TeamsResult)
	require.True(t, ok, "unexpected result type %T", result)
	assert.True(t, teams.Success)
	assert.Equal(t, "billing-service", teams.Repo)
	assert.Equal(t, []string{"payments", "sre"}, teams.Teams)
	assert.Equal(t, 2, teams.TeamCount)
}

func TestGetRepoTeamsNotFoundOverServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := upstream.NewTeamsClient(ts.URL, "token", "acme")
	server, err := mcp.NewServer(mcp.WithTools(TeamTools(client)...))
	require.NoError(t, err)

	response := server.Handle(context.Background(), jsonrpc.NewRequest(
		"tools/call", json.RawMessage(`{"name":"get_repoteams","arguments":{"repo_slug":"gone"}}`), 11,
	))

	require.Nil(t, response.Error)
	payload, ok := response.Result.(map[string]interface{})
	require.True(t, ok, "unexpected result type %T", response.Result)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "API endpoint not found. Check your API URL.", payload["error"])
	assert.Equal(t, 404, payload["status_code"])
}

func TestGetRepoTeamsMissingSlug(t *testing.T) {
	client := upstream.NewTeamsClient("http://unused.invalid", "token", "acme")
	server, err := mcp.NewServer(mcp.WithTools(TeamTools(client)...))
	require.NoError(t, err)

	response := server.Handle(context.Background(), jsonrpc.NewRequest(
		"tools/call", json.RawMessage(`{"name":"get_repoteams","arguments":{}}`), 12,
	))

	require.NotNil(t, response.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, response.Error.Code)
	assert.Contains(t, response.Error.Data, "repo_slug")
}
