package port

import (
	"context"
	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort - storage of the properties a user saved.
type FavoritesRepositoryPort interface {
	Add(ctx context.Context, userID uuid.UUID, propertyID string) error
	Remove(ctx context.Context, userID uuid.UUID, propertyID string) error
	FindPaginatedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error)
	FindFavoriteIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
