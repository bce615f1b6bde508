package catalog

import (
	"github.com/steviee/cfbrowse/internal/curseforge"
	"github.com/steviee/cfbrowse/internal/paging"
	"github.com/steviee/cfbrowse/internal/query"
)

// GamesKey identifies a page of the games list.
func GamesKey(credential string, page paging.PageRequest) query.Key {
	return query.Key{
		Credential: credential,
		Kind:       query.KindGames,
		Index:      page.APIIndex(),
		PageSize:   page.PageSize,
	}
}

// GameKey identifies a single game.
func GameKey(credential string, gameID int) query.Key {
	return query.Key{Credential: credential, Kind: query.KindGame, ID: gameID}
}

// GameVersionsKey identifies the flattened versions of a game.
func GameVersionsKey(credential string, gameID int) query.Key {
	return query.Key{Credential: credential, Kind: query.KindGameVersions, ID: gameID}
}

// GameVersionTypesKey identifies the version types of a game.
func GameVersionTypesKey(credential string, gameID int) query.Key {
	return query.Key{Credential: credential, Kind: query.KindVersionTypes, ID: gameID}
}

// SearchKey identifies a page of mod search results. Filters that send the
// same request share a key.
func SearchKey(credential string, gameID int, q curseforge.SearchQuery, page paging.PageRequest) query.Key {
	return query.Key{
		Credential:   credential,
		Kind:         query.KindModSearch,
		ID:           gameID,
		SearchFilter: q.SentFilter(),
		SortField:    int(q.SortField),
		SortOrder:    string(q.SortOrder),
		Index:        page.APIIndex(),
		PageSize:     page.PageSize,
	}
}

// ModKey identifies a single mod.
func ModKey(credential string, modID int) query.Key {
	return query.Key{Credential: credential, Kind: query.KindMod, ID: modID}
}

// ModFilesKey identifies a page of a mod's files.
func ModFilesKey(credential string, modID int, page paging.PageRequest) query.Key {
	return query.Key{
		Credential: credential,
		Kind:       query.KindModFiles,
		ID:         modID,
		Index:      page.APIIndex(),
		PageSize:   page.PageSize,
	}
}

// FeaturedKey identifies the featured mods of a game.
func FeaturedKey(credential string, gameID int) query.Key {
	return query.Key{Credential: credential, Kind: query.KindFeaturedMods, ID: gameID}
}
