package rest

import "catalog-service/internal/core/domain"

// ListingResponse - one page of the catalog listing.
type ListingResponse struct {
	Data       []domain.CardModel `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
	TotalPages int                `json:"total_pages"`
	View       domain.ViewVariant `json:"view"`
	Filters    domain.FilterState `json:"filters"`
}

type FilterOptionResponse struct {
	Options []string `json:"options,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// FilterOptionsResponse - values the filter panel can offer for the current filters.
type FilterOptionsResponse struct {
	Options map[string]FilterOptionResponse `json:"options"`
	Count   int                             `json:"count"`
}

type PropertyDetailsResponse struct {
	Card         domain.CardModel `json:"card"`
	Gallery      []domain.Image   `json:"gallery"`
	Description  string           `json:"description"`
	PropertyType string           `json:"property_type,omitempty"`
	Bedrooms     int              `json:"bedrooms"`
	Bathrooms    int              `json:"bathrooms"`
	ParkingSpots int              `json:"parking_spots"`
	Area         float64          `json:"area"`
	Location     domain.Location  `json:"location"`
}

// AddFavoriteRequest - request body for POST /api/v1/favorites.
type AddFavoriteRequest struct {
	PropertyID string `json:"property_id"`
}

type PaginatedFavoritesResponse struct {
	Data    []domain.CardModel `json:"data"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}

// ErrorResponse - error body shared by all endpoints.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

func toListingResponse(view *domain.ListingView) ListingResponse {
	return ListingResponse{
		Data:       view.VisibleRecords,
		Total:      view.TotalCount,
		Page:       view.Page,
		PerPage:    view.PerPage,
		TotalPages: view.TotalPages,
		View:       view.Variant,
		Filters:    view.Filters,
	}
}

func toFilterOptionsResponse(res *domain.FilterOptionsResult) FilterOptionsResponse {
	out := FilterOptionsResponse{
		Options: make(map[string]FilterOptionResponse, len(res.Options)),
		Count:   res.Count,
	}
	for key, opt := range res.Options {
		out.Options[key] = FilterOptionResponse{Options: opt.Options, Min: opt.Min, Max: opt.Max}
	}
	return out
}

func toDetailsResponse(d *domain.PropertyDetails) PropertyDetailsResponse {
	return PropertyDetailsResponse{
		Card:         d.Card,
		Gallery:      d.Gallery,
		Description:  d.Description,
		PropertyType: d.Record.PropertyType,
		Bedrooms:     d.Record.Bedrooms,
		Bathrooms:    d.Record.Bathrooms,
		ParkingSpots: d.Record.ParkingSpots,
		Area:         d.Record.Area,
		Location:     d.Record.Location,
	}
}
