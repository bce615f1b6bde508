package curseforge

// PaginationMetadata is the pagination block returned by list endpoints.
type PaginationMetadata struct {
	Index       int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Data       []T                 `json:"data"`
	Pagination *PaginationMetadata `json:"pagination,omitempty"`
}

// TotalCount returns the upstream total, or 0 when pagination is absent.
func (p *Page[T]) TotalCount() int {
	if p == nil || p.Pagination == nil {
		return 0
	}
	return p.Pagination.TotalCount
}

// Empty reports whether the page holds no items.
func (p *Page[T]) Empty() bool {
	return p == nil || len(p.Data) == 0
}

// Game represents a game in the catalog.
type Game struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	DateModified string      `json:"dateModified,omitempty"`
	Assets       *GameAssets `json:"assets,omitempty"`
	Status       int         `json:"status,omitempty"`
	APIStatus    int         `json:"apiStatus,omitempty"`
}

// GameAssets holds the artwork URLs of a game.
type GameAssets struct {
	IconURL  string `json:"iconUrl,omitempty"`
	TileURL  string `json:"tileUrl,omitempty"`
	CoverURL string `json:"coverUrl,omitempty"`
}

// ImageURL returns the icon, tile or cover URL, whichever is set first.
func (g *Game) ImageURL() string {
	if g == nil || g.Assets == nil {
		return ""
	}
	for _, u := range []string{g.Assets.IconURL, g.Assets.TileURL, g.Assets.CoverURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// Mod represents a mod. Search results and the detail endpoint share it;
// search results leave most optional fields empty.
type Mod struct {
	ID                   int               `json:"id"`
	GameID               int               `json:"gameId"`
	Name                 string            `json:"name"`
	Slug                 string            `json:"slug"`
	Links                *ModLinks         `json:"links,omitempty"`
	Summary              string            `json:"summary,omitempty"`
	Status               int               `json:"status,omitempty"`
	DownloadCount        float64           `json:"downloadCount,omitempty"`
	IsFeatured           bool              `json:"isFeatured,omitempty"`
	PrimaryCategoryID    int               `json:"primaryCategoryId,omitempty"`
	Categories           []Category        `json:"categories,omitempty"`
	ClassID              int               `json:"classId,omitempty"`
	Authors              []Author          `json:"authors,omitempty"`
	Logo                 *ModAsset         `json:"logo,omitempty"`
	Screenshots          []ModAsset        `json:"screenshots,omitempty"`
	MainFileID           int               `json:"mainFileId,omitempty"`
	LatestFiles          []ModFile         `json:"latestFiles,omitempty"`
	LatestFilesIndexes   []LatestFileIndex `json:"latestFilesIndexes,omitempty"`
	DateCreated          string            `json:"dateCreated,omitempty"`
	DateModified         string            `json:"dateModified,omitempty"`
	DateReleased         string            `json:"dateReleased,omitempty"`
	AllowModDistribution *bool             `json:"allowModDistribution,omitempty"`
	GamePopularityRank   int               `json:"gamePopularityRank,omitempty"`
	IsAvailable          bool              `json:"isAvailable,omitempty"`
	ThumbsUpCount        int               `json:"thumbsUpCount,omitempty"`
	Rating               float64           `json:"rating,omitempty"`
}

// AuthorNames returns the names of the mod's authors.
func (m *Mod) AuthorNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Authors))
	for _, a := range m.Authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// ModLinks holds the external links of a mod.
type ModLinks struct {
	WebsiteURL string `json:"websiteUrl,omitempty"`
	WikiURL    string `json:"wikiUrl,omitempty"`
	IssuesURL  string `json:"issuesUrl,omitempty"`
	SourceURL  string `json:"sourceUrl,omitempty"`
}

// Category is a mod category.
type Category struct {
	ID               int    `json:"id"`
	GameID           int    `json:"gameId,omitempty"`
	Name             string `json:"name"`
	Slug             string `json:"slug,omitempty"`
	URL              string `json:"url,omitempty"`
	IconURL          string `json:"iconUrl,omitempty"`
	IsClass          bool   `json:"isClass,omitempty"`
	ClassID          int    `json:"classId,omitempty"`
	ParentCategoryID int    `json:"parentCategoryId,omitempty"`
}

// Author is a mod author.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ModAsset is a logo or screenshot.
type ModAsset struct {
	ID           int    `json:"id,omitempty"`
	ModID        int    `json:"modId,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	URL          string `json:"url,omitempty"`
}

// ModFile is a downloadable file of a mod.
type ModFile struct {
	ID                   int                   `json:"id"`
	GameID               int                   `json:"gameId,omitempty"`
	ModID                int                   `json:"modId,omitempty"`
	IsAvailable          bool                  `json:"isAvailable,omitempty"`
	DisplayName          string                `json:"displayName,omitempty"`
	FileName             string                `json:"fileName,omitempty"`
	ReleaseType          int                   `json:"releaseType,omitempty"`
	FileStatus           int                   `json:"fileStatus,omitempty"`
	Hashes               []FileHash            `json:"hashes,omitempty"`
	FileDate             string                `json:"fileDate,omitempty"`
	FileLength           int64                 `json:"fileLength,omitempty"`
	DownloadCount        int64                 `json:"downloadCount,omitempty"`
	FileSizeOnDisk       int64                 `json:"fileSizeOnDisk,omitempty"`
	DownloadURL          string                `json:"downloadUrl,omitempty"`
	GameVersions         []string              `json:"gameVersions,omitempty"`
	SortableGameVersions []SortableGameVersion `json:"sortableGameVersions,omitempty"`
	Dependencies         []FileDependency      `json:"dependencies,omitempty"`
	AlternateFileID      int                   `json:"alternateFileId,omitempty"`
	IsServerPack         bool                  `json:"isServerPack,omitempty"`
	ServerPackFileID     int                   `json:"serverPackFileId,omitempty"`
	IsEarlyAccessContent bool                  `json:"isEarlyAccessContent,omitempty"`
	FileFingerprint      int64                 `json:"fileFingerprint,omitempty"`
	Modules              []FileModule          `json:"modules,omitempty"`
}

// FileHash is a checksum of a file.
type FileHash struct {
	Value string `json:"value"`
	Algo  int    `json:"algo"`
}

// SortableGameVersion is a game version a file supports.
type SortableGameVersion struct {
	GameVersionName        string `json:"gameVersionName,omitempty"`
	GameVersionPadded      string `json:"gameVersionPadded,omitempty"`
	GameVersion            string `json:"gameVersion,omitempty"`
	GameVersionReleaseDate string `json:"gameVersionReleaseDate,omitempty"`
	GameVersionTypeID      int    `json:"gameVersionTypeId,omitempty"`
}

// FileDependency links a file to another mod.
type FileDependency struct {
	ModID        int `json:"modId"`
	RelationType int `json:"relationType"`
}

// FileModule is a top-level entry inside a file archive.
type FileModule struct {
	Name        string `json:"name"`
	Fingerprint int64  `json:"fingerprint"`
}

// LatestFileIndex summarises the latest file per game version.
type LatestFileIndex struct {
	GameVersion       string `json:"gameVersion,omitempty"`
	FileID            int    `json:"fileId,omitempty"`
	Filename          string `json:"filename,omitempty"`
	ReleaseType       int    `json:"releaseType,omitempty"`
	GameVersionTypeID int    `json:"gameVersionTypeId,omitempty"`
	ModLoader         int    `json:"modLoader,omitempty"`
}

// FeaturedMods is the body of the featured mods endpoint.
type FeaturedMods struct {
	Featured        []Mod `json:"featured"`
	Popular         []Mod `json:"popular"`
	RecentlyUpdated []Mod `json:"recentlyUpdated"`
}

// Pick returns the featured mods, or the popular mods when nothing is
// featured.
func (f *FeaturedMods) Pick() []Mod {
	if f == nil {
		return nil
	}
	if len(f.Featured) > 0 {
		return f.Featured
	}
	return f.Popular
}

// GameVersionGroup lists the versions of one version type.
type GameVersionGroup struct {
	Type     int      `json:"type"`
	Versions []string `json:"versions"`
}

// GameVersionType is a version family of a game (e.g. a loader or edition).
type GameVersionType struct {
	ID     int    `json:"id"`
	GameID int    `json:"gameId"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}
