package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"
)

// loadRecords fetches the full list from the source and normalizes it.
func loadRecords(ctx context.Context, source port.PropertySourcePort) ([]domain.PropertyRecord, error) {
	raws, err := source.FetchRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return listing.NormalizeAll(ctx, raws), nil
}
