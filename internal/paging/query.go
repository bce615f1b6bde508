package paging

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// URL query parameter names used to carry a page position.
const (
	IndexParam    = "index"
	PageSizeParam = "pageSize"
)

// Encode writes the absolute index and page size of p into URL values.
func Encode(p PageRequest) url.Values {
	values := url.Values{}
	values.Set(IndexParam, strconv.Itoa(APIIndex(p)))
	values.Set(PageSizeParam, strconv.Itoa(p.PageSize))
	return values
}

// Decode reads a page position from URL values. Values may be numeric
// strings; missing or invalid values fall back to d.
func Decode(values url.Values, d Defaults) PageRequest {
	first := d.First()

	size := first.PageSize
	if raw, ok := lookup(values, PageSizeParam); ok {
		if n, err := cast.ToIntE(raw); err == nil && d.Allowed(n) {
			size = n
		}
	}

	index := APIIndex(first)
	if raw, ok := lookup(values, IndexParam); ok {
		if n, err := cast.ToIntE(raw); err == nil && n >= 0 {
			index = n
		}
	}

	return FromAPIIndex(index, size)
}

func lookup(values url.Values, key string) (string, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return "", false
	}
	// cast parses a leading zero as octal; plain decimal is expected here.
	raw = strings.TrimLeft(raw, "0")
	if raw == "" {
		raw = "0"
	}
	return raw, true
}
