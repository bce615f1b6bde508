package tui

import "github.com/steviee/cfbrowse/internal/query"

// loadedMsg carries the result of a catalog request. key is the request
// it answers; results for any other key than the model's current one are
// dropped.
type loadedMsg struct {
	key  query.Key
	data any
	err  error
}

// keySavedMsg is sent when an entered API key was stored.
type keySavedMsg struct {
	err error
}

// clearNoticeMsg is sent to clear the notice line
type clearNoticeMsg struct{}
