package catalog

import (
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
	"github.com/steviee/cfbrowse/internal/query"
)

// SearchState is the filter, sort and page position of a mod search.
// Transitions return a new state; every change to the query or the page
// size lands on the first page.
type SearchState struct {
	GameID int
	Query  curseforge.SearchQuery
	Page   paging.PageRequest
}

// NewSearchState returns the initial search of a game.
func NewSearchState(gameID int, d paging.Defaults) SearchState {
	return SearchState{GameID: gameID, Page: d.First()}
}

// WithFilter replaces the search filter.
func (s SearchState) WithFilter(filter string) SearchState {
	s.Query.SearchFilter = filter
	s.Page = paging.Reset(s.Page)
	return s
}

// WithSortField replaces the sort field.
func (s SearchState) WithSortField(field curseforge.SortField) SearchState {
	s.Query.SortField = field
	s.Page = paging.Reset(s.Page)
	return s
}

// WithSortOrder replaces the sort order.
func (s SearchState) WithSortOrder(order curseforge.SortOrder) SearchState {
	s.Query.SortOrder = order
	s.Page = paging.Reset(s.Page)
	return s
}

// WithPageSize replaces the page size.
func (s SearchState) WithPageSize(size int) SearchState {
	s.Page = paging.WithPageSize(s.Page, size)
	return s
}

// WithPage moves to another page of the same result set.
func (s SearchState) WithPage(page paging.PageRequest) SearchState {
	s.Page = page
	return s
}

// Key returns the cache key of the state's request.
func (s SearchState) Key(credential string) query.Key {
	return SearchKey(credential, s.GameID, s.Query, s.Page)
}
