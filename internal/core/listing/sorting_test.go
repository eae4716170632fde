package listing

import (
	"context"
	"testing"
	"time"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestSort_PriceAsc(t *testing.T) {
	raws := decodeRaw(t, `[
		{"id": "1", "preco": 500000, "tipoImovel": "casa"},
		{"id": "2", "preco": 300000, "tipoImovel": "apartamento"}
	]`)
	records := NormalizeAll(context.Background(), raws)

	got := Sort(Filter(records, domain.DefaultFilterState()), domain.SortPriceAsc)

	assert.Equal(t, []string{"2", "1"}, ids(got))
}

func TestSort_Keys(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		key  domain.SortKey
		want []string
	}{
		{domain.SortRelevance, []string{"1", "2", "3", "4"}},
		{domain.SortPriceAsc, []string{"4", "3", "2", "1"}},
		{domain.SortPriceDesc, []string{"1", "2", "3", "4"}},
		{domain.SortAreaDesc, []string{"4", "1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(records, tt.key)))
		})
	}
}

func TestSort_IsStableForEqualKeys(t *testing.T) {
	records := []domain.PropertyRecord{
		{ID: "a", Price: 100, Area: 50},
		{ID: "b", Price: 200, Area: 50},
		{ID: "c", Price: 100, Area: 50},
		{ID: "d", Price: 200, Area: 50},
		{ID: "e", Price: 100, Area: 50},
	}

	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(Sort(records, domain.SortPriceAsc)))
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(Sort(records, domain.SortPriceDesc)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(Sort(records, domain.SortAreaDesc)))
}

func TestSort_Newest(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.PropertyRecord{
		{ID: "old", PublishedAt: base},
		{ID: "undated"},
		{ID: "new", PublishedAt: base.Add(48 * time.Hour)},
	}

	assert.Equal(t, []string{"new", "old", "undated"}, ids(Sort(records, domain.SortNewest)))
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	records := sampleRecords()

	_ = Sort(records, domain.SortPriceAsc)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(records))
}

func TestParseSortKey_UnknownFallsBackToRelevance(t *testing.T) {
	assert.Equal(t, domain.SortPriceAsc, domain.ParseSortKey("menor-preco"))
	assert.Equal(t, domain.SortAreaDesc, domain.ParseSortKey("AREA_DESC"))
	assert.Equal(t, domain.SortRelevance, domain.ParseSortKey("cheapest"))
	assert.Nil(t, ComparatorFor(domain.SortRelevance))
}
