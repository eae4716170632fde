package domain

import "strings"

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortAreaDesc  SortKey = "area_desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey unifies the spellings used by different catalog screens.
// Unknown values fall back to relevance.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_asc", "price-asc", "menor-preco", "menor_preco":
		return SortPriceAsc
	case "price_desc", "price-desc", "maior-preco", "maior_preco":
		return SortPriceDesc
	case "area_desc", "area-desc", "area", "maior-area":
		return SortAreaDesc
	case "newest", "recent", "recentes", "mais-recentes":
		return SortNewest
	default:
		return SortRelevance
	}
}

// ParseTransactionType maps a deal filter value to a TransactionType.
// An empty result means the filter is not applied.
func ParseTransactionType(s string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sale", "venda", "comprar":
		return TransactionSale
	case "rent", "aluguel", "alugar":
		return TransactionRent
	default:
		return ""
	}
}

// FilterState - all filters the client holds. Zero values mean "not applied".
type FilterState struct {
	Query           string          `json:"query"`
	PropertyType    string          `json:"property_type"`
	Location        string          `json:"location"`
	PriceMin        float64         `json:"price_min"`
	PriceMax        float64         `json:"price_max"`
	MinBedrooms     int             `json:"min_bedrooms"`
	TransactionType TransactionType `json:"transaction_type"`
	SortKey         SortKey         `json:"sort_key"`
}

// DefaultFilterState is what "clear filters" resets to.
func DefaultFilterState() FilterState {
	return FilterState{SortKey: SortRelevance}
}

// IsEmpty reports whether no narrowing filter is active.
func (f FilterState) IsEmpty() bool {
	return strings.TrimSpace(f.Query) == "" &&
		f.PropertyType == "" &&
		strings.TrimSpace(f.Location) == "" &&
		f.PriceMin <= 0 && f.PriceMax <= 0 &&
		f.MinBedrooms <= 0 &&
		f.TransactionType == ""
}
