package upstream

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// recordKeys lists the response keys that may carry the group array, in
// priority order. The upstream is inconsistent about which one it uses, so
// the first key holding an array wins.
var recordKeys = []string{"groups", "data"}

// Query selects one page of groups.
type Query struct {
	Page   int
	Limit  int
	Search string
}

// Pagination describes the page window of a groups response. Values come
// from the response's page object when present, otherwise from the request.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// GroupsResult is the shaped payload for one page of groups. Groups maps
// group name to id; records missing either field are excluded from the map
// but remain in OriginalGroups.
type GroupsResult struct {
	Groups         map[string]interface{} `json:"groups"`
	GroupsCount    int                    `json:"groups_count"`
	OriginalGroups []json.RawMessage      `json:"original_groups_array"`
	Pagination     Pagination             `json:"pagination"`
	Timestamp      string                 `json:"timestamp"`
	Success        bool                   `json:"success"`
}

// MemberCountResult reports how many users belong to one group.
type MemberCountResult struct {
	GroupID   string `json:"group_id"`
	UserCount int    `json:"user_count"`
	Timestamp string `json:"timestamp"`
	Success   bool   `json:"success"`
}

// GroupsClient fetches group data from the configured REST API.
type GroupsClient struct {
	conn
	endpoint string
	token    string
}

// NewGroupsClient builds a client for the given endpoint and bearer token.
// Either may be empty; calls then fail with a configuration message before
// any network activity.
func NewGroupsClient(endpoint, token string, opts ...ClientOption) *GroupsClient {
	c := &GroupsClient{
		conn:     defaultConn(),
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
	}
	for _, opt := range opts {
		opt(&c.conn)
	}
	return c
}

// Fetch retrieves one page of groups and folds it into a name to id map.
func (c *GroupsClient) Fetch(ctx context.Context, q Query) (*GroupsResult, error) {
	if c.endpoint == "" {
		return nil, configError("API_ENDPOINT not configured")
	}
	if c.token == "" {
		return nil, configError("BEARER_TOKEN not configured")
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	c.logger.Debug("fetching groups", "page", q.Page, "limit", q.Limit, "search", q.Search)

	raw, _, apiErr := c.get(ctx, c.endpoint+"/groups?"+params.Encode(), c.token)
	if apiErr != nil {
		return nil, apiErr
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil || body == nil {
		return nil, malformedError()
	}

	records := matchRecords(body)

	groups := map[string]interface{}{}
	for _, record := range records {
		var fields map[string]interface{}
		if err := json.Unmarshal(record, &fields); err != nil {
			continue
		}
		id, ok := fields["id"]
		if !ok {
			continue
		}
		name, ok := fields["name"].(string)
		if !ok {
			continue
		}
		groups[name] = id
	}

	page, limit, total := q.Page, q.Limit, len(records)
	if rawPage, ok := body["page"]; ok {
		var pi struct {
			PageIndex *int `json:"pageIndex"`
			PageSize  *int `json:"pageSize"`
			Total     *int `json:"total"`
		}
		if err := json.Unmarshal(rawPage, &pi); err == nil {
			if pi.PageIndex != nil {
				page = *pi.PageIndex
			}
			if pi.PageSize != nil {
				limit = *pi.PageSize
			}
			if pi.Total != nil {
				total = *pi.Total
			}
		}
	}

	totalPages := 1
	if limit > 0 {
		totalPages = max(1, (total+limit-1)/limit)
	}

	c.logger.Debug("groups fetched", "count", len(groups), "total", total)

	return &GroupsResult{
		Groups:         groups,
		GroupsCount:    len(groups),
		OriginalGroups: records,
		Pagination: Pagination{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Success:   true,
	}, nil
}

// MemberCount reads the membership total for one group from the
// memberships endpoint's page object.
func (c *GroupsClient) MemberCount(ctx context.Context, groupID string) (*MemberCountResult, error) {
	if c.endpoint == "" {
		return nil, configError("API_ENDPOINT not configured")
	}
	if c.token == "" {
		return nil, configError("BEARER_TOKEN not configured")
	}

	params := url.Values{}
	params.Set("groupId", groupID)
	params.Set("page", "1")
	params.Set("limit", "0")

	c.logger.Debug("fetching member count", "group_id", groupID)

	raw, header, apiErr := c.get(ctx, c.endpoint+"/group-memberships?"+params.Encode(), c.token)
	if apiErr != nil {
		return nil, apiErr
	}

	var body struct {
		Page struct {
			Total int `json:"total"`
		} `json:"page"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, malformedError()
	}

	return &MemberCountResult{
		GroupID:   groupID,
		UserCount: body.Page.Total,
		Timestamp: headerDate(header),
		Success:   true,
	}, nil
}

// matchRecords tries each candidate key in order and returns the first
// value that is an array. No match yields an empty slice.
func matchRecords(body map[string]json.RawMessage) []json.RawMessage {
	for _, key := range recordKeys {
		raw, ok := body[key]
		if !ok {
			continue
		}
		var records []json.RawMessage
		if err := json.Unmarshal(raw, &records); err != nil || records == nil {
			continue
		}
		return records
	}
	return []json.RawMessage{}
}
