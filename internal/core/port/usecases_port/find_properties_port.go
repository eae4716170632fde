package usecases_port

import (
	"context"
	"catalog-service/internal/core/domain"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, query domain.ListingQuery) (*domain.ListingView, error)
}
