package usecase

import (
	"context"
	"strings"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"
)

type GetPropertyDetailsUseCase struct {
	source    port.PropertySourcePort
	presenter *listing.Presenter
}

func NewGetPropertyDetailsUseCase(source port.PropertySourcePort, presenter *listing.Presenter) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{source: source, presenter: presenter}
}

// Execute looks the property up by slug first and by id second.
func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, slugOrID string) (*domain.PropertyDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetPropertyDetails",
		"key":      slugOrID,
	})

	ucLogger.Info("Use case started", nil)

	key := strings.TrimSpace(slugOrID)
	if key == "" {
		return nil, domain.ErrPropertyNotFound
	}

	records, err := loadRecords(ctx, uc.source)
	if err != nil {
		ucLogger.Error("Failed to load records", err, nil)
		return nil, err
	}

	rec, ok := findBySlugOrID(records, key)
	if !ok {
		ucLogger.Info("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	details := uc.presenter.Details(rec)

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": rec.ID})
	return &details, nil
}

func findBySlugOrID(records []domain.PropertyRecord, key string) (domain.PropertyRecord, bool) {
	for _, rec := range records {
		if rec.Slug == key {
			return rec, true
		}
	}
	for _, rec := range records {
		if rec.ID == key {
			return rec, true
		}
	}
	return domain.PropertyRecord{}, false
}
