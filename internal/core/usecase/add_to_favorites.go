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

type AddToFavoritesUseCase struct {
	repo   port.FavoritesRepositoryPort
	events port.FavoriteEventsPort
}

// NewAddToFavoritesUseCase - events may be nil when messaging is disabled.
func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort, events port.FavoriteEventsPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo, events: events}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, propertyID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"user_id":     userID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return domain.ErrMissingID
	}

	if err := uc.repo.Add(ctx, userID, propertyID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	publishFavoriteEvent(ctx, ucLogger, uc.events, domain.FavoriteEvent{
		Type:       domain.FavoriteAdded,
		UserID:     userID,
		PropertyID: propertyID,
		OccurredAt: time.Now().UTC(),
	})

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// publishFavoriteEvent is best effort: the favorite is already stored, so a
// broker failure is logged and not returned.
func publishFavoriteEvent(ctx context.Context, logger port.LoggerPort, events port.FavoriteEventsPort, event domain.FavoriteEvent) {
	if events == nil {
		return
	}
	if err := events.PublishFavoriteEvent(ctx, event); err != nil {
		logger.Error("Failed to publish favorite event", err, port.Fields{"event_type": event.Type})
	}
}
