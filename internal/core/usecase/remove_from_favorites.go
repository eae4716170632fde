package usecase

import (
	"context"
	"strings"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type RemoveFromFavoritesUseCase struct {
	repo   port.FavoritesRepositoryPort
	events port.FavoriteEventsPort
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort, events port.FavoriteEventsPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo, events: events}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, propertyID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "RemoveFromFavorites",
		"user_id":     userID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return domain.ErrMissingID
	}

	if err := uc.repo.Remove(ctx, userID, propertyID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	publishFavoriteEvent(ctx, ucLogger, uc.events, domain.FavoriteEvent{
		Type:       domain.FavoriteRemoved,
		UserID:     userID,
		PropertyID: propertyID,
		OccurredAt: time.Now().UTC(),
	})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
