package usecase

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"
)

// FindPropertiesUseCase runs one listing controller per request: fetch the
// whole list, then filter, sort and paginate it in memory.
type FindPropertiesUseCase struct {
	source   port.PropertySourcePort
	pipeline *listing.Pipeline
}

func NewFindPropertiesUseCase(source port.PropertySourcePort, pipeline *listing.Pipeline) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{source: source, pipeline: pipeline}
}

// Execute returns the view even when the fetch fails: it then carries the
// Failed status and the error, and the same error is returned.
func (uc *FindPropertiesUseCase) Execute(ctx context.Context, query domain.ListingQuery) (*domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"sort":     query.Filters.SortKey,
		"page":     query.Page,
		"per_page": query.PerPage,
	})

	ucLogger.Info("Use case started", nil)

	state := listing.ViewState{
		Filters:  query.Filters,
		ViewMode: query.Variant,
		Page:     query.Page,
		PerPage:  query.PerPage,
	}
	controller := listing.NewController(uc.source.FetchRecords, uc.pipeline, state)
	defer controller.Close()

	err := controller.Load(contextkeys.ContextWithLogger(ctx, ucLogger))
	view := controller.View()
	if err != nil {
		if errors.Is(err, listing.ErrStaleResponse) {
			// the request context went away mid-fetch
			return &view, fmt.Errorf("listing load aborted: %w", err)
		}
		ucLogger.Error("Failed to load properties", err, nil)
		return &view, fmt.Errorf("failed to load properties: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_count": view.TotalCount,
		"on_page":     len(view.VisibleRecords),
	})
	return &view, nil
}
