package query

import (
	"fmt"
	"strings"
)

// Kind names the upstream operation a key belongs to.
type Kind string

// Kinds of cached requests.
const (
	KindGames        Kind = "games"
	KindGame         Kind = "game"
	KindGameVersions Kind = "game-versions"
	KindVersionTypes Kind = "game-version-types"
	KindModSearch    Kind = "mod-search"
	KindMod          Kind = "mod"
	KindModFiles     Kind = "mod-files"
	KindFeaturedMods Kind = "featured-mods"
)

// Key identifies one logical request. Two fetches with equal keys share a
// single in-flight call and a single cache entry.
type Key struct {
	Credential   string
	Kind         Kind
	ID           int
	SearchFilter string
	SortField    int
	SortOrder    string
	Index        int
	PageSize     int
}

// String renders the key for logs. The credential is never included.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(string(k.Kind))
	if k.ID != 0 {
		fmt.Fprintf(&b, "/%d", k.ID)
	}
	if k.SearchFilter != "" {
		fmt.Fprintf(&b, " filter=%q", k.SearchFilter)
	}
	if k.SortField != 0 {
		fmt.Fprintf(&b, " sort=%d", k.SortField)
	}
	if k.SortOrder != "" {
		fmt.Fprintf(&b, " order=%s", k.SortOrder)
	}
	if k.PageSize != 0 {
		fmt.Fprintf(&b, " index=%d size=%d", k.Index, k.PageSize)
	}
	return b.String()
}
