package listing

import (
	"context"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.PropertyRecord {
	return []domain.PropertyRecord{
		{ID: "1", Title: "Casa no Centro", Price: 500000, PropertyType: "casa", Bedrooms: 3, Area: 150,
			TransactionType: domain.TransactionSale, Location: domain.Location{Neighborhood: "Bairro Centro", City: "Guararema"}},
		{ID: "2", Title: "Apartamento Jardim", Price: 300000, PropertyType: "apartamento", Bedrooms: 2, Area: 70,
			TransactionType: domain.TransactionSale, Location: domain.Location{Neighborhood: "Jardim", City: "Mogi"}},
		{ID: "3", Title: "Sala comercial", Price: 2500, PropertyType: "comercial", Area: 40,
			TransactionType: domain.TransactionRent, Location: domain.Location{Neighborhood: "Centro", City: "Mogi"}},
		{ID: "4", Title: "Terreno sob consulta", PropertyType: "terreno", Area: 1000,
			TransactionType: domain.TransactionSale, Location: domain.Location{Neighborhood: "Itapema"}},
	}
}

func ids(records []domain.PropertyRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilter_PriceMaxKeepsCheaperRecord(t *testing.T) {
	raws := decodeRaw(t, `[
		{"id": "1", "preco": 500000, "tipoImovel": "casa"},
		{"id": "2", "preco": 300000, "tipoImovel": "apartamento"}
	]`)
	records := NormalizeAll(context.Background(), raws)

	got := Filter(records, domain.FilterState{PriceMax: 400000})

	assert.Equal(t, []string{"2"}, ids(got))
}

func TestMatchText_CaseInsensitiveNeighborhood(t *testing.T) {
	rec := domain.PropertyRecord{ID: "1", Title: "Casa", Location: domain.Location{Neighborhood: "Bairro Centro"}}

	assert.True(t, MatchText(rec, domain.FilterState{Query: "Centro"}))
	assert.True(t, MatchText(rec, domain.FilterState{Query: "centro"}))
	assert.True(t, MatchText(rec, domain.FilterState{Query: "CASA"}))
	assert.False(t, MatchText(rec, domain.FilterState{Query: "Jardim"}))
}

func TestMatchLocation_IgnoresTitle(t *testing.T) {
	rec := domain.PropertyRecord{ID: "1", Title: "Perto do Centro", Location: domain.Location{Neighborhood: "Jardim"}}

	assert.False(t, MatchLocation(rec, domain.FilterState{Location: "centro"}))
	assert.True(t, MatchLocation(rec, domain.FilterState{Location: "jard"}))
}

func TestMatchType_IsExact(t *testing.T) {
	rec := domain.PropertyRecord{ID: "1", PropertyType: "casa"}

	assert.True(t, MatchType(rec, domain.FilterState{PropertyType: "casa"}))
	assert.False(t, MatchType(rec, domain.FilterState{PropertyType: "cas"}))
	assert.True(t, MatchType(rec, domain.FilterState{}))
}

func TestMatchPrice_PriceOnRequestIsNeverExcluded(t *testing.T) {
	rec := domain.PropertyRecord{ID: "4"}

	assert.True(t, MatchPrice(rec, domain.FilterState{PriceMax: 1}))
	assert.True(t, MatchPrice(rec, domain.FilterState{PriceMin: 1000000}))
}

func TestMatchPrice_Bounds(t *testing.T) {
	rec := domain.PropertyRecord{ID: "1", Price: 300000}

	assert.True(t, MatchPrice(rec, domain.FilterState{PriceMin: 300000, PriceMax: 300000}))
	assert.False(t, MatchPrice(rec, domain.FilterState{PriceMin: 300001}))
	assert.False(t, MatchPrice(rec, domain.FilterState{PriceMax: 299999}))
}

func TestFilter_CombinesPredicatesWithAnd(t *testing.T) {
	got := Filter(sampleRecords(), domain.FilterState{
		Query:           "centro",
		TransactionType: domain.TransactionSale,
		MinBedrooms:     3,
	})

	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_EmptyStateKeepsEverythingInOrder(t *testing.T) {
	records := sampleRecords()

	got := Filter(records, domain.DefaultFilterState())

	assert.Equal(t, ids(records), ids(got))
}

func TestFilter_IsIdempotent(t *testing.T) {
	records := sampleRecords()
	state := domain.FilterState{Query: "centro", PriceMax: 600000}

	first := Filter(records, state)
	second := Filter(records, state)
	again := Filter(first, state)

	assert.Equal(t, first, second)
	assert.Equal(t, first, again)
	assert.Equal(t, ids(sampleRecords()), ids(records), "input must not be modified")
}

func TestFilter_AddingConstraintNeverGrowsResult(t *testing.T) {
	records := sampleRecords()
	base := domain.FilterState{Query: "c"}

	constraints := []func(domain.FilterState) domain.FilterState{
		func(s domain.FilterState) domain.FilterState { s.PropertyType = "casa"; return s },
		func(s domain.FilterState) domain.FilterState { s.Location = "centro"; return s },
		func(s domain.FilterState) domain.FilterState { s.PriceMax = 400000; return s },
		func(s domain.FilterState) domain.FilterState { s.PriceMin = 1000; return s },
		func(s domain.FilterState) domain.FilterState { s.MinBedrooms = 2; return s },
		func(s domain.FilterState) domain.FilterState { s.TransactionType = domain.TransactionRent; return s },
		func(s domain.FilterState) domain.FilterState { s.Query = "ce"; return s },
	}

	wide := ids(Filter(records, base))
	for i, add := range constraints {
		narrow := ids(Filter(records, add(base)))
		require.Subsetf(t, wide, narrow, "constraint %d widened the result", i)
	}
}
