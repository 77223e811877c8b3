package tools

import (
	"github.com/deckhand-ai/deckhand/internal/hostpath"
	"github.com/deckhand-ai/deckhand/internal/upstream"
	"github.com/deckhand-ai/deckhand/mcp"
)

// Deps carries the backends the catalog's tools are wired to.
type Deps struct {
	Resolver hostpath.Resolver
	Groups   *upstream.GroupsClient
	Teams    *upstream.TeamsClient
}

// Catalog returns every tool the server exposes, in listing order.
func Catalog(deps Deps) []mcp.Tool {
	var catalog []mcp.Tool
	catalog = append(catalog, FileTools(deps.Resolver)...)
	catalog = append(catalog, WeatherTools()...)
	catalog = append(catalog, GroupTools(deps.Groups)...)
	catalog = append(catalog, TeamTools(deps.Teams)...)
	return catalog
}
