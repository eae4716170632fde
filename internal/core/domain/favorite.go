package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteItem - one "saved property" entry of a user.
type FavoriteItem struct {
	UserID     uuid.UUID
	PropertyID string
	CreatedAt  time.Time
}

// PaginatedFavoriteIDs - page of favorite property ids, newest first.
type PaginatedFavoriteIDs struct {
	PropertyIDs  []string
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

// PaginatedFavorites - favorites joined with live catalog data.
type PaginatedFavorites struct {
	Cards        []CardModel
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

type FavoriteEventType string

const (
	FavoriteAdded   FavoriteEventType = "added"
	FavoriteRemoved FavoriteEventType = "removed"
)

// FavoriteEvent is published whenever a user saves or drops a property.
type FavoriteEvent struct {
	Type       FavoriteEventType
	UserID     uuid.UUID
	PropertyID string
	OccurredAt time.Time
}
