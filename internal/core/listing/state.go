package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"catalog-service/internal/core/domain"
)

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
	MaxPage        = 1_000_000
)

// ViewState - everything the listing screen holds besides the records.
type ViewState struct {
	Filters  domain.FilterState
	ViewMode domain.ViewVariant
	Page     int
	PerPage  int
}

func DefaultViewState() ViewState {
	return ViewState{
		Filters:  domain.DefaultFilterState(),
		ViewMode: domain.VariantGrid,
		Page:     1,
		PerPage:  DefaultPerPage,
	}
}

// Action is one state transition understood by Reduce.
type Action interface {
	reduce(s ViewState) ViewState
}

// Reduce applies a to s and returns the new state; s is not modified.
func Reduce(s ViewState, a Action) ViewState {
	if a == nil {
		return sanitize(s)
	}
	return sanitize(a.reduce(s))
}

type SetQuery struct{ Query string }

func (a SetQuery) reduce(s ViewState) ViewState {
	s.Filters.Query = strings.TrimSpace(a.Query)
	s.Page = 1
	return s
}

type SetPropertyType struct{ PropertyType string }

func (a SetPropertyType) reduce(s ViewState) ViewState {
	s.Filters.PropertyType = strings.TrimSpace(a.PropertyType)
	s.Page = 1
	return s
}

type SetLocation struct{ Location string }

func (a SetLocation) reduce(s ViewState) ViewState {
	s.Filters.Location = strings.TrimSpace(a.Location)
	s.Page = 1
	return s
}

// SetPriceRange sets both bounds; a non-positive bound is not applied.
type SetPriceRange struct{ Min, Max float64 }

func (a SetPriceRange) reduce(s ViewState) ViewState {
	s.Filters.PriceMin = positiveOrZero(a.Min)
	s.Filters.PriceMax = positiveOrZero(a.Max)
	s.Page = 1
	return s
}

type SetMinBedrooms struct{ Bedrooms int }

func (a SetMinBedrooms) reduce(s ViewState) ViewState {
	s.Filters.MinBedrooms = max(a.Bedrooms, 0)
	s.Page = 1
	return s
}

type SetTransactionType struct{ TransactionType domain.TransactionType }

func (a SetTransactionType) reduce(s ViewState) ViewState {
	s.Filters.TransactionType = a.TransactionType
	s.Page = 1
	return s
}

type SetSort struct{ Key domain.SortKey }

func (a SetSort) reduce(s ViewState) ViewState {
	s.Filters.SortKey = domain.ParseSortKey(string(a.Key))
	s.Page = 1
	return s
}

type SetViewMode struct{ Mode domain.ViewVariant }

func (a SetViewMode) reduce(s ViewState) ViewState {
	s.ViewMode = domain.ParseViewVariant(string(a.Mode))
	return s
}

type SetPage struct{ Page int }

func (a SetPage) reduce(s ViewState) ViewState {
	s.Page = a.Page
	return s
}

type SetPerPage struct{ PerPage int }

func (a SetPerPage) reduce(s ViewState) ViewState {
	s.PerPage = a.PerPage
	s.Page = 1
	return s
}

// ClearFilters resets filters and sort; view mode and page size survive.
type ClearFilters struct{}

func (ClearFilters) reduce(s ViewState) ViewState {
	s.Filters = domain.DefaultFilterState()
	s.Page = 1
	return s
}

// ApplyParams seeds the state from URL query parameters. Only present keys
// change the state.
type ApplyParams struct{ Values url.Values }

func (a ApplyParams) reduce(s ViewState) ViewState {
	return StateFromParams(a.Values, s)
}

// StateFromParams overlays query parameters on base. English names and the
// Portuguese names used by the public site are both accepted. Values that do
// not parse leave the filter unapplied.
func StateFromParams(values url.Values, base ViewState) ViewState {
	s := base
	filterChanged := false

	if v, ok := lookup(values, "q", "busca"); ok {
		s.Filters.Query = v
		filterChanged = true
	}
	if v, ok := lookup(values, "type", "tipo"); ok {
		s.Filters.PropertyType = v
		filterChanged = true
	}
	if v, ok := lookup(values, "location", "local"); ok {
		s.Filters.Location = v
		filterChanged = true
	}
	if v, ok := lookup(values, "price_min", "preco_min"); ok {
		s.Filters.PriceMin = parsePositiveFloat(v)
		filterChanged = true
	}
	if v, ok := lookup(values, "price_max", "preco_max"); ok {
		s.Filters.PriceMax = parsePositiveFloat(v)
		filterChanged = true
	}
	if v, ok := lookup(values, "bedrooms", "quartos"); ok {
		s.Filters.MinBedrooms = parsePositiveInt(strings.TrimSuffix(v, "+"))
		filterChanged = true
	}
	if v, ok := lookup(values, "deal", "finalidade"); ok {
		s.Filters.TransactionType = domain.ParseTransactionType(v)
		filterChanged = true
	}
	if v, ok := lookup(values, "sort", "ordem"); ok {
		s.Filters.SortKey = domain.ParseSortKey(v)
		filterChanged = true
	}
	if v, ok := lookup(values, "view", "visualizacao"); ok {
		s.ViewMode = domain.ParseViewVariant(v)
	}
	if v, ok := lookup(values, "per_page", "perPage"); ok {
		s.PerPage = parsePositiveInt(v)
	}
	if filterChanged {
		s.Page = 1
	}
	if v, ok := lookup(values, "page", "pagina"); ok {
		s.Page = parsePositiveInt(v)
	}
	return sanitize(s)
}

func sanitize(s ViewState) ViewState {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Page > MaxPage {
		s.Page = MaxPage
	}
	if s.PerPage < 1 {
		s.PerPage = DefaultPerPage
	}
	if s.PerPage > MaxPerPage {
		s.PerPage = MaxPerPage
	}
	if s.ViewMode == "" {
		s.ViewMode = domain.VariantGrid
	}
	if s.Filters.SortKey == "" {
		s.Filters.SortKey = domain.SortRelevance
	}
	return s
}

func lookup(values url.Values, keys ...string) (string, bool) {
	for _, k := range keys {
		if vs, ok := values[k]; ok && len(vs) > 0 {
			return strings.TrimSpace(vs[0]), true
		}
	}
	return "", false
}

func parsePositiveFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return positiveOrZero(v)
}

func parsePositiveInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// positiveOrZero also drops NaN and infinities, so "Infinity" means "not applied".
func positiveOrZero(v float64) float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return v
	}
	return 0
}
