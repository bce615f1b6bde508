package curseforge

import (
	"fmt"
	"strconv"
	"strings"
)

// SortField is the field mod search results are ordered by.
// The zero value means "not set": the API then applies its own ordering.
type SortField int

// Sort fields accepted by the mod search endpoint.
const (
	SortFeatured SortField = iota + 1
	SortPopularity
	SortLastUpdated
	SortName
	SortAuthor
	SortTotalDownloads
	SortCategory
	SortGameVersion
	SortEarlyAccess
	SortFeaturedReleased
	SortReleasedDate
	SortRating
)

// SortFields lists every sort field in API order.
var SortFields = []SortField{
	SortFeatured,
	SortPopularity,
	SortLastUpdated,
	SortName,
	SortAuthor,
	SortTotalDownloads,
	SortCategory,
	SortGameVersion,
	SortEarlyAccess,
	SortFeaturedReleased,
	SortReleasedDate,
	SortRating,
}

var sortFieldLabels = map[SortField]string{
	SortFeatured:         "Featured",
	SortPopularity:       "Popularity",
	SortLastUpdated:      "Last Updated",
	SortName:             "Name",
	SortAuthor:           "Author",
	SortTotalDownloads:   "Total Downloads",
	SortCategory:         "Category",
	SortGameVersion:      "Game Version",
	SortEarlyAccess:      "Early Access",
	SortFeaturedReleased: "Featured Released",
	SortReleasedDate:     "Released Date",
	SortRating:           "Rating",
}

// String returns the display label.
func (f SortField) String() string {
	if label, ok := sortFieldLabels[f]; ok {
		return label
	}
	if f == 0 {
		return "Default"
	}
	return fmt.Sprintf("SortField(%d)", int(f))
}

// Valid reports whether f is one of the named sort fields.
func (f SortField) Valid() bool {
	_, ok := sortFieldLabels[f]
	return ok
}

// Next cycles to the following sort field.
func (f SortField) Next() SortField {
	for i, s := range SortFields {
		if s == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortFields[0]
}

// ParseSortField accepts a label ("total downloads", "total-downloads") or
// the numeric API value.
func ParseSortField(s string) (SortField, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		f := SortField(n)
		if !f.Valid() {
			return 0, fmt.Errorf("unknown sort field %d", n)
		}
		return f, nil
	}

	want := normalizeLabel(s)
	for _, f := range SortFields {
		if normalizeLabel(f.String()) == want {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown sort field %q", s)
}

func normalizeLabel(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// SortOrder is the direction of a sorted search. Empty means "not set".
type SortOrder string

// Sort orders accepted by the API.
const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder validates a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "", SortAscending, SortDescending:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort order %q: must be asc or desc", s)
	}
}

// Toggle flips the order; an unset order becomes ascending.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAscending {
		return SortDescending
	}
	return SortAscending
}
