package usecase

import (
	"context"
	"slices"
	"strconv"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"
	"catalog-service/internal/core/port"
)

type GetFilterOptionsUseCase struct {
	source port.PropertySourcePort
}

func NewGetFilterOptionsUseCase(source port.PropertySourcePort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{source: source}
}

// Execute collects the values the filter panel offers. Option lists cover the
// whole catalog; the price range and the count follow the current filters
// (the price range ignores the price bounds themselves).
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, filters domain.FilterState) (*domain.FilterOptionsResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFilterOptions",
	})

	ucLogger.Info("Use case started", nil)

	records, err := loadRecords(ctx, uc.source)
	if err != nil {
		ucLogger.Error("Failed to load records", err, nil)
		return nil, err
	}

	resultOptions := make(map[string]domain.FilterOption)

	if types := distinct(records, func(r domain.PropertyRecord) string { return r.PropertyType }); len(types) > 0 {
		resultOptions["property_types"] = domain.FilterOption{Options: types}
	}
	if hoods := distinct(records, func(r domain.PropertyRecord) string { return r.Location.Neighborhood }); len(hoods) > 0 {
		resultOptions["neighborhoods"] = domain.FilterOption{Options: hoods}
	}
	if cities := distinct(records, func(r domain.PropertyRecord) string { return r.Location.City }); len(cities) > 0 {
		resultOptions["cities"] = domain.FilterOption{Options: cities}
	}
	if bedrooms := distinctBedrooms(records); len(bedrooms) > 0 {
		resultOptions["bedrooms"] = domain.FilterOption{Options: bedrooms}
	}

	unbounded := filters
	unbounded.PriceMin, unbounded.PriceMax = 0, 0
	if minPrice, maxPrice, ok := priceRange(listing.Filter(records, unbounded)); ok {
		resultOptions["price"] = domain.FilterOption{Min: &minPrice, Max: &maxPrice}
	}

	count := len(listing.Filter(records, filters))

	ucLogger.Info("Use case finished successfully", port.Fields{
		"option_groups": len(resultOptions),
		"count":         count,
	})
	return &domain.FilterOptionsResult{
		Options: resultOptions,
		Count:   count,
	}, nil
}

func distinct(records []domain.PropertyRecord, field func(domain.PropertyRecord) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range records {
		v := field(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func distinctBedrooms(records []domain.PropertyRecord) []string {
	counts := make([]int, 0)
	for _, rec := range records {
		if rec.Bedrooms > 0 && !slices.Contains(counts, rec.Bedrooms) {
			counts = append(counts, rec.Bedrooms)
		}
	}
	slices.Sort(counts)

	out := make([]string, len(counts))
	for i, n := range counts {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// priceRange ignores price-on-request records.
func priceRange(records []domain.PropertyRecord) (minPrice, maxPrice float64, ok bool) {
	for _, rec := range records {
		if !rec.HasPrice() {
			continue
		}
		if !ok || rec.Price < minPrice {
			minPrice = rec.Price
		}
		if !ok || rec.Price > maxPrice {
			maxPrice = rec.Price
		}
		ok = true
	}
	return minPrice, maxPrice, ok
}
