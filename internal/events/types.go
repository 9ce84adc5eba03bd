package events

// Entity types
const (
	EntityMovie  = "movie"
	EntitySearch = "search"
)

// Event type constants
const (
	EventFavoriteAdded   = "favorite.added"
	EventFavoriteRemoved = "favorite.removed"
	EventSearchDispatch  = "search.dispatched"
	EventSearchApplied   = "search.applied"
	EventSearchDiscarded = "search.discarded"
	EventSearchFailed    = "search.failed"
)

// FavoriteAdded is emitted when a movie is added to favorites.
// EntityID is the TMDB id.
type FavoriteAdded struct {
	BaseEvent
	Title string `json:"title"`
	Total int    `json:"total"` // collection size after the add
}

// FavoriteRemoved is emitted when a movie is removed from favorites.
type FavoriteRemoved struct {
	BaseEvent
	Total int `json:"total"`
}

// SearchDispatched is emitted when a session issues a remote call.
// EntityID is the dispatch generation within the session; Session
// identifies the session across search.* events.
type SearchDispatched struct {
	BaseEvent
	Session string `json:"session"`
	Query   string `json:"query"`
	Listing bool   `json:"listing"` // default trending listing instead of a search
}

// SearchApplied is emitted when a result reaches the listener.
type SearchApplied struct {
	BaseEvent
	Session string `json:"session"`
	Query   string `json:"query"`
	Results int    `json:"results"`
}

// SearchDiscarded is emitted when a result arrives for a superseded
// dispatch or a closed session.
type SearchDiscarded struct {
	BaseEvent
	Session string `json:"session"`
	Query   string `json:"query"`
	Reason  string `json:"reason"` // "stale" or "closed"
}

// SearchFailed is emitted when the remote call fails.
type SearchFailed struct {
	BaseEvent
	Session string `json:"session"`
	Query   string `json:"query"`
	Error   string `json:"error"`
}
