package constants

// Routing keys
const (
	RoutingKeyFavoriteAdded   = "favorites.added"
	RoutingKeyFavoriteRemoved = "favorites.removed"
)

// Message headers
const (
	HeaderTraceID      = "x-trace-id"
	HeaderEventType    = "x-event-type"
	HeaderEventVersion = "x-event-version"
)
