package curseforge

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/steviee/cfbrowse/internal/paging"
)

// SearchQuery holds the user-facing filter and sort state of a mod search.
type SearchQuery struct {
	SearchFilter string    `json:"search_filter,omitempty"`
	SortField    SortField `json:"sort_field,omitempty"`
	SortOrder    SortOrder `json:"sort_order,omitempty"`
}

// SearchActive reports whether the filter holds anything besides whitespace.
func (q SearchQuery) SearchActive() bool {
	return strings.TrimSpace(q.SearchFilter) != ""
}

// SentFilter returns the searchFilter value sent upstream: the filter as
// typed, or "" when it is blank.
func (q SearchQuery) SentFilter() string {
	if !q.SearchActive() {
		return ""
	}
	return q.SearchFilter
}

// PageParams builds the index and pageSize parameters for a page. A
// non-positive page size falls back to the default.
func PageParams(page paging.PageRequest, d paging.Defaults) url.Values {
	if page.PageSize <= 0 {
		page.PageSize = d.First().PageSize
	}
	if page.PageIndex < 0 {
		page.PageIndex = paging.DefaultPageIndex
	}

	params := url.Values{}
	params.Set("index", strconv.Itoa(paging.APIIndex(page)))
	params.Set("pageSize", strconv.Itoa(page.PageSize))
	return params
}

// SearchParams builds the query parameters of a mod search.
//
// searchFilter is sent only when it is not blank, and then as typed.
// sortField and sortOrder are sent only when set so the API can apply its
// own default ordering.
func SearchParams(gameID int, q SearchQuery, page paging.PageRequest, d paging.Defaults) (url.Values, error) {
	if gameID <= 0 {
		return nil, ErrInvalidGameID
	}

	params := PageParams(page, d)
	params.Set("gameId", strconv.Itoa(gameID))

	if filter := q.SentFilter(); filter != "" {
		params.Set("searchFilter", filter)
	}
	if q.SortField != 0 {
		params.Set("sortField", strconv.Itoa(int(q.SortField)))
	}
	if q.SortOrder != "" {
		params.Set("sortOrder", string(q.SortOrder))
	}

	return params, nil
}
