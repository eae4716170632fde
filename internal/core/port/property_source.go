package port

import (
	"context"
	"catalog-service/internal/core/domain"
)

// PropertySourcePort - upstream data source. Returns the full, unfiltered list
// of raw records; filtering and sorting never happen on the source side.
type PropertySourcePort interface {
	FetchRecords(ctx context.Context) ([]domain.RawRecord, error)
}
