// Package paging reconciles the page-number model used by views with the
// absolute item index model used by the catalog API.
//
// Views think in zero-based pages of a fixed size. The API expects the
// absolute offset of the first item ("index") together with the page size.
// Every change to the result set (filter, sort, page size) sends the view
// back to the first page.
package paging

import "fmt"

const (
	// DefaultPageIndex is the first page.
	DefaultPageIndex = 0

	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 20
)

// DefaultPageSizes are the page sizes offered to the user.
var DefaultPageSizes = []int{10, 20, 50}

// PageRequest identifies one page of a result set.
type PageRequest struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// Defaults holds the fallback page size and the offered page sizes.
type Defaults struct {
	PageSize  int
	PageSizes []int
}

// DefaultDefaults returns the built-in pagination defaults.
func DefaultDefaults() Defaults {
	sizes := make([]int, len(DefaultPageSizes))
	copy(sizes, DefaultPageSizes)
	return Defaults{
		PageSize:  DefaultPageSize,
		PageSizes: sizes,
	}
}

// Allowed reports whether size is one of the offered page sizes.
// An empty PageSizes list allows any positive size.
func (d Defaults) Allowed(size int) bool {
	if size <= 0 {
		return false
	}
	if len(d.PageSizes) == 0 {
		return true
	}
	for _, s := range d.PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// First returns the first page using the default page size.
func (d Defaults) First() PageRequest {
	size := d.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return PageRequest{PageIndex: DefaultPageIndex, PageSize: size}
}

// Validate checks the page request against the offered page sizes.
func (d Defaults) Validate(p PageRequest) error {
	if p.PageIndex < 0 {
		return fmt.Errorf("page index must be >= 0, got %d", p.PageIndex)
	}
	if !d.Allowed(p.PageSize) {
		return fmt.Errorf("page size %d is not one of %v", p.PageSize, d.PageSizes)
	}
	return nil
}

// APIIndex returns the absolute offset of the first item on the page.
func APIIndex(p PageRequest) int {
	return p.PageIndex * p.PageSize
}

// APIIndex returns the absolute offset of the first item on the page.
func (p PageRequest) APIIndex() int {
	return APIIndex(p)
}

// TotalPages returns ceil(totalCount / pageSize).
// It returns 0 for an empty result set or a non-positive page size.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// Reset returns the first page, keeping the page size. It is applied on
// every change to the search filter or the sort order.
func Reset(p PageRequest) PageRequest {
	return PageRequest{PageIndex: DefaultPageIndex, PageSize: p.PageSize}
}

// WithPageSize switches to a new page size and returns to the first page.
func WithPageSize(p PageRequest, size int) PageRequest {
	return PageRequest{PageIndex: DefaultPageIndex, PageSize: size}
}

// FromAPIIndex converts an absolute item index back to a page request.
// A non-positive page size yields the first page of size 0.
func FromAPIIndex(index, pageSize int) PageRequest {
	if pageSize <= 0 {
		return PageRequest{PageIndex: DefaultPageIndex, PageSize: pageSize}
	}
	if index < 0 {
		index = 0
	}
	return PageRequest{PageIndex: index / pageSize, PageSize: pageSize}
}

// Controls describes which navigation actions are available.
type Controls struct {
	Current     int
	TotalPages  int
	CanPrevious bool
	CanNext     bool
}

// NewControls computes navigation bounds for a page. Both directions are
// disabled while a fetch is pending.
func NewControls(p PageRequest, totalPages int, disabled bool) Controls {
	return Controls{
		Current:     p.PageIndex,
		TotalPages:  totalPages,
		CanPrevious: !disabled && p.PageIndex > 0,
		CanNext:     !disabled && p.PageIndex < totalPages-1,
	}
}

// Empty reports whether there is nothing to page through.
func (c Controls) Empty() bool {
	return c.TotalPages == 0
}

// Label renders the human readable position, e.g. "Page 2 of 5".
func (c Controls) Label() string {
	total := c.TotalPages
	if total < 1 {
		total = 1
	}
	return fmt.Sprintf("Page %d of %d", c.Current+1, total)
}

// Next returns the following page, or p unchanged when not permitted.
func (c Controls) Next(p PageRequest) (PageRequest, bool) {
	if !c.CanNext {
		return p, false
	}
	return PageRequest{PageIndex: p.PageIndex + 1, PageSize: p.PageSize}, true
}

// Previous returns the preceding page, or p unchanged when not permitted.
func (c Controls) Previous(p PageRequest) (PageRequest, bool) {
	if !c.CanPrevious {
		return p, false
	}
	return PageRequest{PageIndex: p.PageIndex - 1, PageSize: p.PageSize}, true
}

// NextPageSize cycles to the page size following current in sizes.
func NextPageSize(sizes []int, current int) int {
	if len(sizes) == 0 {
		return current
	}
	for i, s := range sizes {
		if s == current {
			return sizes[(i+1)%len(sizes)]
		}
	}
	return sizes[0]
}
