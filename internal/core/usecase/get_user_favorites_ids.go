package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type GetUserFavoriteIDsUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewGetUserFavoriteIDsUseCase(repo port.FavoritesRepositoryPort) *GetUserFavoriteIDsUseCase {
	return &GetUserFavoriteIDsUseCase{repo: repo}
}

func (uc *GetUserFavoriteIDsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavoriteIDs",
		"user_id":  userID,
	})

	ucLogger.Info("Use case started", nil)

	ids, err := uc.repo.FindFavoriteIDsByUser(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(ids)})
	return ids, nil
}
