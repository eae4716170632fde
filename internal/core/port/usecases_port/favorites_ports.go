package usecases_port

import (
	"context"
	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

type AddToFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, propertyID string) error
}

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, propertyID string) error
}

type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedFavorites, error)
}

type GetUserFavoriteIDsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]string, error)
}
