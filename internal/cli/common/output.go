package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/catalog"
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
)

// Output is the JSON envelope of every command.
type Output struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PageInfo is the pagination block of list output.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Index      int  `json:"index"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// NewPageInfo describes page p of a result set with totalCount items.
func NewPageInfo(p paging.PageRequest, totalCount int) PageInfo {
	totalPages := paging.TotalPages(totalCount, p.PageSize)
	controls := paging.NewControls(p, totalPages, false)
	return PageInfo{
		Page:       p.PageIndex + 1,
		PageSize:   p.PageSize,
		Index:      p.APIIndex(),
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    controls.CanNext,
		HasPrev:    controls.CanPrevious,
	}
}

// IsJSON reports whether --json is set on cmd or any parent.
func IsJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}

// IsQuiet reports whether --quiet is set on cmd or any parent.
func IsQuiet(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	v, err := cmd.Flags().GetBool("quiet")
	return err == nil && v
}

// WriteJSON writes a success envelope around data.
func WriteJSON(w io.Writer, data any) error {
	return encode(w, Output{Status: "success", Data: data})
}

// OutputError reports err on w in JSON mode and returns it so the command
// fails either way.
func OutputError(w io.Writer, jsonMode bool, err error) error {
	if jsonMode {
		_ = encode(w, Output{Status: "error", Error: err.Error()})
	}
	return err
}

// Explain adds a hint for errors a user can act on.
func Explain(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotDispatched):
		return fmt.Errorf("%w (run 'cfbrowse auth set <key>' or set %s_API_KEY)", err, EnvPrefix)
	case errors.Is(err, curseforge.ErrRateLimitExceeded):
		return fmt.Errorf("%w: try again in a minute", err)
	}
	return err
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// ParseID parses a positional numeric id.
func ParseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q", curseforge.ErrConfiguration, what, arg)
	}
	return id, nil
}

// PageFlags converts the 1-based --page flag and --page-size into a page
// request checked against the offered sizes.
func PageFlags(page, pageSize int, d paging.Defaults) (paging.PageRequest, error) {
	if page < 1 {
		return paging.PageRequest{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize == 0 {
		pageSize = d.First().PageSize
	}

	p := paging.PageRequest{PageIndex: page - 1, PageSize: pageSize}
	if err := d.Validate(p); err != nil {
		return paging.PageRequest{}, err
	}
	return p, nil
}
