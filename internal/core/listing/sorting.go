package listing

import (
	"cmp"
	"slices"

	"catalog-service/internal/core/domain"
)

// Comparator orders two records; negative means a goes first.
type Comparator func(a, b domain.PropertyRecord) int

var comparators = map[domain.SortKey]Comparator{
	domain.SortPriceAsc: func(a, b domain.PropertyRecord) int {
		return cmp.Compare(a.Price, b.Price)
	},
	domain.SortPriceDesc: func(a, b domain.PropertyRecord) int {
		return cmp.Compare(b.Price, a.Price)
	},
	domain.SortAreaDesc: func(a, b domain.PropertyRecord) int {
		return cmp.Compare(b.Area, a.Area)
	},
	domain.SortNewest: func(a, b domain.PropertyRecord) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	},
}

// ComparatorFor returns nil for relevance: there is no relevance scoring,
// input order is the ranking.
func ComparatorFor(key domain.SortKey) Comparator {
	return comparators[key]
}

// Sort returns a sorted copy of records. The sort is stable so records with
// equal keys keep their input order.
func Sort(records []domain.PropertyRecord, key domain.SortKey) []domain.PropertyRecord {
	out := slices.Clone(records)
	if less := ComparatorFor(key); less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}
