package listing

import (
	"strings"

	"catalog-service/internal/core/domain"

	"golang.org/x/text/cases"
)

// Predicate decides whether a record stays in the result set.
type Predicate func(rec domain.PropertyRecord, state domain.FilterState) bool

// Predicates are combined with logical AND. Every predicate treats its zero
// filter value as "not applied".
var Predicates = []Predicate{
	MatchText,
	MatchType,
	MatchLocation,
	MatchPrice,
	MatchBedrooms,
	MatchTransaction,
}

// MatchText: query against title or neighborhood.
func MatchText(rec domain.PropertyRecord, state domain.FilterState) bool {
	q := strings.TrimSpace(state.Query)
	if q == "" {
		return true
	}
	return containsFold(rec.Title, q) || containsFold(rec.Location.Neighborhood, q)
}

// MatchType compares the free-text category exactly.
func MatchType(rec domain.PropertyRecord, state domain.FilterState) bool {
	return state.PropertyType == "" || rec.PropertyType == state.PropertyType
}

func MatchLocation(rec domain.PropertyRecord, state domain.FilterState) bool {
	loc := strings.TrimSpace(state.Location)
	if loc == "" {
		return true
	}
	return containsFold(rec.Location.Neighborhood, loc)
}

// MatchPrice applies the price bounds. Price-on-request records (price 0)
// are never excluded by a bound; the card flags them instead.
func MatchPrice(rec domain.PropertyRecord, state domain.FilterState) bool {
	if !rec.HasPrice() {
		return true
	}
	if state.PriceMax > 0 && rec.Price > state.PriceMax {
		return false
	}
	if state.PriceMin > 0 && rec.Price < state.PriceMin {
		return false
	}
	return true
}

// MatchBedrooms keeps records with at least MinBedrooms bedrooms.
func MatchBedrooms(rec domain.PropertyRecord, state domain.FilterState) bool {
	return state.MinBedrooms <= 0 || rec.Bedrooms >= state.MinBedrooms
}

func MatchTransaction(rec domain.PropertyRecord, state domain.FilterState) bool {
	return state.TransactionType == "" || rec.TransactionType == state.TransactionType
}

// Matches reports whether rec satisfies every predicate.
func Matches(rec domain.PropertyRecord, state domain.FilterState) bool {
	for _, p := range Predicates {
		if !p(rec, state) {
			return false
		}
	}
	return true
}

// Filter returns the records matching state, in input order. The input slice
// is left untouched.
func Filter(records []domain.PropertyRecord, state domain.FilterState) []domain.PropertyRecord {
	out := make([]domain.PropertyRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, state) {
			out = append(out, rec)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// fold builds a new Caser per call: a Caser keeps state and is not safe to
// share between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}
