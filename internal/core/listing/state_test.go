package listing

import (
	"math"
	"net/url"
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestReduce_FilterChangesResetPage(t *testing.T) {
	s := DefaultViewState()
	s = Reduce(s, SetPage{Page: 4})
	assert.Equal(t, 4, s.Page)

	actions := []Action{
		SetQuery{Query: "centro"},
		SetPropertyType{PropertyType: "casa"},
		SetLocation{Location: "Jardim"},
		SetPriceRange{Min: 1, Max: 2},
		SetMinBedrooms{Bedrooms: 2},
		SetTransactionType{TransactionType: domain.TransactionRent},
		SetSort{Key: domain.SortPriceDesc},
		SetPerPage{PerPage: 24},
		ClearFilters{},
	}
	for _, a := range actions {
		paged := Reduce(s, SetPage{Page: 3})
		assert.Equalf(t, 1, Reduce(paged, a).Page, "%T must reset page", a)
	}
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	s := DefaultViewState()

	next := Reduce(s, SetQuery{Query: " casa "})

	assert.Equal(t, "", s.Filters.Query)
	assert.Equal(t, "casa", next.Filters.Query)
}

func TestReduce_ViewModeKeepsPage(t *testing.T) {
	s := Reduce(DefaultViewState(), SetPage{Page: 2})

	s = Reduce(s, SetViewMode{Mode: domain.VariantList})

	assert.Equal(t, domain.VariantList, s.ViewMode)
	assert.Equal(t, 2, s.Page)
}

func TestReduce_ClearFiltersKeepsViewModeAndPageSize(t *testing.T) {
	s := DefaultViewState()
	s = Reduce(s, SetViewMode{Mode: domain.VariantList})
	s = Reduce(s, SetPerPage{PerPage: 30})
	s = Reduce(s, SetQuery{Query: "casa"})
	s = Reduce(s, SetSort{Key: domain.SortAreaDesc})

	s = Reduce(s, ClearFilters{})

	assert.Equal(t, domain.DefaultFilterState(), s.Filters)
	assert.Equal(t, domain.VariantList, s.ViewMode)
	assert.Equal(t, 30, s.PerPage)
}

func TestReduce_InvalidValuesAreSanitized(t *testing.T) {
	s := DefaultViewState()

	assert.Equal(t, 1, Reduce(s, SetPage{Page: -3}).Page)
	assert.Equal(t, DefaultPerPage, Reduce(s, SetPerPage{PerPage: 0}).PerPage)
	assert.Equal(t, MaxPerPage, Reduce(s, SetPerPage{PerPage: 5000}).PerPage)
	assert.Zero(t, Reduce(s, SetPriceRange{Min: -5, Max: -1}).Filters.PriceMax)
	assert.Equal(t, domain.SortRelevance, Reduce(s, SetSort{Key: "bogus"}).Filters.SortKey)
	assert.Equal(t, domain.VariantGrid, Reduce(s, SetViewMode{Mode: "bogus"}).ViewMode)
}

func TestStateFromParams(t *testing.T) {
	values := url.Values{
		"q":          {"Centro"},
		"tipo":       {"casa"},
		"local":      {"Jardim"},
		"preco_max":  {"400000"},
		"quartos":    {"3+"},
		"finalidade": {"aluguel"},
		"sort":       {"price-asc"},
		"view":       {"list"},
		"page":       {"2"},
		"per_page":   {"6"},
	}

	s := StateFromParams(values, DefaultViewState())

	assert.Equal(t, domain.FilterState{
		Query:           "Centro",
		PropertyType:    "casa",
		Location:        "Jardim",
		PriceMax:        400000,
		MinBedrooms:     3,
		TransactionType: domain.TransactionRent,
		SortKey:         domain.SortPriceAsc,
	}, s.Filters)
	assert.Equal(t, domain.VariantList, s.ViewMode)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 6, s.PerPage)
}

func TestStateFromParams_InvalidNumbersMeanNotApplied(t *testing.T) {
	values := url.Values{"price_max": {"abc"}, "price_min": {"-10"}, "bedrooms": {"many"}, "page": {"x"}}

	s := StateFromParams(values, DefaultViewState())

	assert.Zero(t, s.Filters.PriceMax)
	assert.Zero(t, s.Filters.PriceMin)
	assert.Zero(t, s.Filters.MinBedrooms)
	assert.Equal(t, 1, s.Page)
}

func TestApplyParams_OnlyPresentKeysChange(t *testing.T) {
	s := Reduce(DefaultViewState(), SetQuery{Query: "casa"})
	s = Reduce(s, SetViewMode{Mode: domain.VariantList})

	s = Reduce(s, ApplyParams{Values: url.Values{"tipo": {"apartamento"}}})

	assert.Equal(t, "casa", s.Filters.Query)
	assert.Equal(t, "apartamento", s.Filters.PropertyType)
	assert.Equal(t, domain.VariantList, s.ViewMode)
}

func TestStateFromParams_OutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		check  func(t *testing.T, s ViewState)
	}{
		{"max int64 page", url.Values{"page": {"9223372036854775807"}}, func(t *testing.T, s ViewState) {
			assert.Equal(t, MaxPage, s.Page)
		}},
		{"page beyond int64", url.Values{"pagina": {"99999999999999999999"}}, func(t *testing.T, s ViewState) {
			assert.Equal(t, 1, s.Page)
		}},
		{"huge page size", url.Values{"per_page": {"9223372036854775807"}}, func(t *testing.T, s ViewState) {
			assert.Equal(t, MaxPerPage, s.PerPage)
		}},
		{"infinite price", url.Values{"price_max": {"Infinity"}, "price_min": {"+Inf"}}, func(t *testing.T, s ViewState) {
			assert.False(t, math.IsInf(s.Filters.PriceMax, 0))
			assert.False(t, math.IsInf(s.Filters.PriceMin, 0))
		}},
		{"NaN price", url.Values{"preco_max": {"NaN"}}, func(t *testing.T, s ViewState) {
			assert.Zero(t, s.Filters.PriceMax)
		}},
		{"huge bedrooms", url.Values{"quartos": {"9223372036854775807"}}, func(t *testing.T, s ViewState) {
			assert.GreaterOrEqual(t, s.Filters.MinBedrooms, 0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, StateFromParams(tt.values, DefaultViewState()))
		})
	}
}

func TestReduce_SetPageIsCapped(t *testing.T) {
	assert.Equal(t, MaxPage, Reduce(DefaultViewState(), SetPage{Page: math.MaxInt}).Page)
}
