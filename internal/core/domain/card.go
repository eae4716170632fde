package domain

import "strings"

// ViewVariant - named layout mode. All variants share one card mapping.
type ViewVariant string

const (
	VariantGrid     ViewVariant = "grid"
	VariantList     ViewVariant = "list"
	VariantFeatured ViewVariant = "featured"
	VariantCompact  ViewVariant = "compact"
	VariantCarousel ViewVariant = "carousel"
)

func ParseViewVariant(s string) ViewVariant {
	switch v := ViewVariant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantGrid, VariantList, VariantFeatured, VariantCompact, VariantCarousel:
		return v
	default:
		return VariantGrid
	}
}

// RouteStyle selects the detail page prefix. The public site and the CRM
// cards historically disagree on it, so both are kept explicit.
type RouteStyle string

const (
	RoutePublic RouteStyle = "public" // /imovel/{slug}
	RouteCRM    RouteStyle = "crm"    // /imoveis/{slug}
)

func ParseRouteStyle(s string) RouteStyle {
	if strings.EqualFold(strings.TrimSpace(s), string(RouteCRM)) {
		return RouteCRM
	}
	return RoutePublic
}

type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type Feature struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CardModel - display-ready representation of one record.
type CardModel struct {
	ID      string      `json:"id"`
	Slug    string      `json:"slug"`
	Title   string      `json:"title"`
	Variant ViewVariant `json:"variant"`

	ImageURL         string `json:"image_url"`
	ImageAlt         string `json:"image_alt"`
	FallbackImageURL string `json:"fallback_image_url"`

	PriceLabel     string `json:"price_label"`
	PriceOnRequest bool   `json:"price_on_request"`

	TransactionBadge Badge  `json:"transaction_badge"`
	HighlightBadge   *Badge `json:"highlight_badge,omitempty"`

	Description   string    `json:"description,omitempty"`
	LocationLabel string    `json:"location"`
	Features      []Feature `json:"features"`
	DetailPath    string    `json:"detail_path"`
	MapCell       string    `json:"map_cell,omitempty"`
}

// PropertyDetails - card plus everything the detail page needs.
type PropertyDetails struct {
	Card        CardModel
	Record      PropertyRecord
	Gallery     []Image
	Description string
}
