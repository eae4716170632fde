package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
)

type GetUserFavoritesUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
	source        port.PropertySourcePort
	presenter     *listing.Presenter
}

func NewGetUserFavoritesUseCase(
	favoritesRepo port.FavoritesRepositoryPort,
	source port.PropertySourcePort,
	presenter *listing.Presenter,
) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{
		favoritesRepo: favoritesRepo,
		source:        source,
		presenter:     presenter,
	}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedFavorites, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"user_id":  userID,
		"limit":    limit,
		"offset":   offset,
	})

	ucLogger.Info("Use case started", nil)

	if limit <= 0 {
		limit = listing.DefaultPerPage
	}
	if offset < 0 {
		offset = 0
	}
	currentPage := offset/limit + 1

	paginatedIDs, err := uc.favoritesRepo.FindPaginatedByUser(ctx, userID, limit, offset)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}

	if len(paginatedIDs.PropertyIDs) == 0 {
		ucLogger.Info("No favorites on page", port.Fields{
			"current_page": currentPage,
			"total_count":  paginatedIDs.TotalCount,
		})
		return &domain.PaginatedFavorites{
			Cards:        []domain.CardModel{},
			TotalCount:   paginatedIDs.TotalCount,
			CurrentPage:  currentPage,
			ItemsPerPage: limit,
		}, nil
	}

	records, err := loadRecords(ctx, uc.source)
	if err != nil {
		ucLogger.Error("Failed to load records from source", err, nil)
		return nil, err
	}

	// Keep the order of the favorites list, not the order of the source.
	// On duplicate ids the first record wins, as in the details lookup.
	byID := make(map[string]domain.PropertyRecord, len(records))
	for _, rec := range records {
		if _, seen := byID[rec.ID]; !seen {
			byID[rec.ID] = rec
		}
	}

	cards := make([]domain.CardModel, 0, len(paginatedIDs.PropertyIDs))
	missing := 0
	for _, id := range paginatedIDs.PropertyIDs {
		rec, ok := byID[id]
		if !ok {
			missing++
			continue
		}
		cards = append(cards, uc.presenter.Card(rec, domain.VariantGrid))
	}
	if missing > 0 {
		ucLogger.Warn("Some favorites are no longer in the catalog", port.Fields{"missing": missing})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"cards": len(cards)})
	return &domain.PaginatedFavorites{
		Cards:        cards,
		TotalCount:   paginatedIDs.TotalCount,
		CurrentPage:  currentPage,
		ItemsPerPage: limit,
	}, nil
}
