package domain

// ListingStatus - lifecycle of one listing view instance.
type ListingStatus string

const (
	StatusIdle    ListingStatus = "idle"
	StatusLoading ListingStatus = "loading"
	StatusLoaded  ListingStatus = "loaded"
	StatusFailed  ListingStatus = "failed"
)

// ListingQuery - everything a caller can ask of the catalog listing.
type ListingQuery struct {
	Filters FilterState
	Variant ViewVariant
	Page    int
	PerPage int
}

// ListingView - output boundary of the pipeline.
type ListingView struct {
	VisibleRecords []CardModel
	TotalCount     int // filtered records before pagination
	IsLoading      bool
	Error          error
	Status         ListingStatus

	Filters    FilterState
	Variant    ViewVariant
	Page       int
	PerPage    int
	TotalPages int
}

// FilterOption - one option group for the filter panel.
type FilterOption struct {
	Options []string
	Min     *float64
	Max     *float64
}

type FilterOptionsResult struct {
	Options map[string]FilterOption
	Count   int
}
