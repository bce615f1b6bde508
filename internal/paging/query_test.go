package paging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	values := Encode(PageRequest{PageIndex: 2, PageSize: 20})

	assert.Equal(t, "40", values.Get(IndexParam))
	assert.Equal(t, "20", values.Get(PageSizeParam))
	assert.Equal(t, "index=40&pageSize=20", values.Encode())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	d := DefaultDefaults()

	for _, size := range d.PageSizes {
		for page := 0; page < 10; page++ {
			p := PageRequest{PageIndex: page, PageSize: size}

			// Through the raw query string, so every value is a string.
			parsed, err := url.ParseQuery(Encode(p).Encode())
			assert.NoError(t, err)

			got := Decode(parsed, d)
			assert.Equal(t, p, got)
			assert.Equal(t, APIIndex(p), APIIndex(got))
		}
	}
}

func TestDecode(t *testing.T) {
	d := DefaultDefaults()

	tests := []struct {
		name  string
		query string
		want  PageRequest
	}{
		{name: "missing values use defaults", query: "", want: PageRequest{PageIndex: 0, PageSize: 20}},
		{name: "numeric strings", query: "index=100&pageSize=50", want: PageRequest{PageIndex: 2, PageSize: 50}},
		{name: "index not on a page boundary", query: "index=45&pageSize=20", want: PageRequest{PageIndex: 2, PageSize: 20}},
		{name: "invalid index", query: "index=abc&pageSize=10", want: PageRequest{PageIndex: 0, PageSize: 10}},
		{name: "negative index", query: "index=-20&pageSize=10", want: PageRequest{PageIndex: 0, PageSize: 10}},
		{name: "invalid page size", query: "index=40&pageSize=xyz", want: PageRequest{PageIndex: 2, PageSize: 20}},
		{name: "page size not offered", query: "index=40&pageSize=7", want: PageRequest{PageIndex: 2, PageSize: 20}},
		{name: "zero page size", query: "index=40&pageSize=0", want: PageRequest{PageIndex: 2, PageSize: 20}},
		{name: "leading zeros are decimal", query: "index=010&pageSize=10", want: PageRequest{PageIndex: 1, PageSize: 10}},
		{name: "surrounding whitespace", query: "index=%2020%20&pageSize=10", want: PageRequest{PageIndex: 2, PageSize: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Decode(values, d))
		})
	}
}
