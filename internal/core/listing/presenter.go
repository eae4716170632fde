package listing

import (
	"net/url"
	"strconv"
	"strings"

	"catalog-service/internal/core/domain"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	DefaultPlaceholderImage = "/images/property-placeholder.jpg"
	DefaultDescriptionLimit = 120
	mapCellPrecision        = 6
)

var (
	badgeSale      = domain.Badge{Label: "Venda", Color: "blue"}
	badgeRent      = domain.Badge{Label: "Aluguel", Color: "green"}
	badgeHighlight = domain.Badge{Label: "Destaque", Color: "amber"}
	badgePremium   = domain.Badge{Label: "Premium", Color: "gold"}
)

type PresenterOptions struct {
	RouteStyle       domain.RouteStyle
	PlaceholderImage string
	DescriptionLimit int
	Language         language.Tag
	Currency         currency.Unit
}

// Presenter maps normalized records to card models. It is pure: the same
// record and variant always give the same card.
type Presenter struct {
	opts   PresenterOptions
	prices *PriceFormatter
}

func NewPresenter(opts PresenterOptions) *Presenter {
	if opts.RouteStyle == "" {
		opts.RouteStyle = domain.RoutePublic
	}
	if strings.TrimSpace(opts.PlaceholderImage) == "" {
		opts.PlaceholderImage = DefaultPlaceholderImage
	}
	if opts.DescriptionLimit <= 0 {
		opts.DescriptionLimit = DefaultDescriptionLimit
	}
	if opts.Language == language.Und {
		opts.Language = language.BrazilianPortuguese
	}
	if opts.Currency == (currency.Unit{}) {
		opts.Currency = currency.BRL
	}
	return &Presenter{opts: opts, prices: NewPriceFormatter(opts.Language, opts.Currency)}
}

// Card builds the card model of rec for the given variant. The variant only
// picks how the featured flag is labelled; every other field is identical
// across variants.
func (p *Presenter) Card(rec domain.PropertyRecord, variant domain.ViewVariant) domain.CardModel {
	imageURL, imageAlt := ResolveImage(rec, p.opts.PlaceholderImage)
	priceLabel, onRequest := p.prices.Format(rec.Price, rec.TransactionType)

	card := domain.CardModel{
		ID:               rec.ID,
		Slug:             rec.Slug,
		Title:            rec.Title,
		Variant:          variant,
		ImageURL:         imageURL,
		ImageAlt:         imageAlt,
		FallbackImageURL: p.opts.PlaceholderImage,
		PriceLabel:       priceLabel,
		PriceOnRequest:   onRequest,
		TransactionBadge: transactionBadge(rec.TransactionType),
		Description:      TruncateDescription(rec.Description, p.opts.DescriptionLimit),
		LocationLabel:    LocationLabel(rec.Location),
		Features:         p.features(rec),
		DetailPath:       DetailPath(rec, p.opts.RouteStyle),
	}
	if rec.Featured {
		badge := highlightBadge(variant)
		card.HighlightBadge = &badge
	}
	if len(rec.Location.Geohash) >= mapCellPrecision {
		card.MapCell = rec.Location.Geohash[:mapCellPrecision]
	}
	return card
}

func (p *Presenter) Cards(records []domain.PropertyRecord, variant domain.ViewVariant) []domain.CardModel {
	cards := make([]domain.CardModel, len(records))
	for i, rec := range records {
		cards[i] = p.Card(rec, variant)
	}
	return cards
}

// Details builds the detail page model: full description and the gallery
// with the main image first.
func (p *Presenter) Details(rec domain.PropertyRecord) domain.PropertyDetails {
	gallery := make([]domain.Image, 0, len(rec.Images)+1)
	if rec.MainImage != nil {
		gallery = append(gallery, *rec.MainImage)
	}
	for _, img := range rec.Images {
		if rec.MainImage != nil && img.URL == rec.MainImage.URL {
			continue
		}
		gallery = append(gallery, img)
	}
	if len(gallery) == 0 {
		gallery = append(gallery, domain.Image{URL: p.opts.PlaceholderImage, Alt: rec.Title})
	}

	return domain.PropertyDetails{
		Card:        p.Card(rec, domain.VariantFeatured),
		Record:      rec,
		Gallery:     gallery,
		Description: strings.TrimSpace(rec.Description),
	}
}

// ResolveImage walks the fallback chain: main image, first gallery image,
// placeholder.
func ResolveImage(rec domain.PropertyRecord, placeholder string) (imageURL, alt string) {
	alt = rec.Title
	switch {
	case rec.MainImage != nil && rec.MainImage.URL != "":
		imageURL = rec.MainImage.URL
		if rec.MainImage.Alt != "" {
			alt = rec.MainImage.Alt
		}
	case len(rec.Images) > 0 && rec.Images[0].URL != "":
		imageURL = rec.Images[0].URL
		if rec.Images[0].Alt != "" {
			alt = rec.Images[0].Alt
		}
	default:
		imageURL = placeholder
	}
	return imageURL, alt
}

// DetailPath builds the route of the detail page, slug first, id second.
func DetailPath(rec domain.PropertyRecord, style domain.RouteStyle) string {
	key := rec.Slug
	if key == "" {
		key = rec.ID
	}
	prefix := "/imovel/"
	if style == domain.RouteCRM {
		prefix = "/imoveis/"
	}
	return prefix + url.PathEscape(key)
}

// LocationLabel renders "Neighborhood, City"; "-" when both are missing.
func LocationLabel(loc domain.Location) string {
	parts := make([]string, 0, 2)
	if loc.Neighborhood != "" {
		parts = append(parts, loc.Neighborhood)
	}
	if loc.City != "" && loc.City != loc.Neighborhood {
		parts = append(parts, loc.City)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func transactionBadge(tt domain.TransactionType) domain.Badge {
	if tt == domain.TransactionRent {
		return badgeRent
	}
	return badgeSale
}

func highlightBadge(variant domain.ViewVariant) domain.Badge {
	switch variant {
	case domain.VariantFeatured, domain.VariantCarousel:
		return badgePremium
	default:
		return badgeHighlight
	}
}

// features lists the numeric facts of the card. Zero values are left out in
// every variant.
func (p *Presenter) features(rec domain.PropertyRecord) []domain.Feature {
	features := make([]domain.Feature, 0, 4)
	add := func(key string, n int, one, many string) {
		if n > 0 {
			features = append(features, domain.Feature{
				Key:   key,
				Label: strconv.Itoa(n) + " " + plural(n, one, many),
				Value: float64(n),
			})
		}
	}
	add("bedrooms", rec.Bedrooms, "quarto", "quartos")
	add("bathrooms", rec.Bathrooms, "banheiro", "banheiros")
	add("parking_spots", rec.ParkingSpots, "vaga", "vagas")
	if rec.Area > 0 {
		features = append(features, domain.Feature{
			Key:   "area",
			Label: p.prices.FormatArea(rec.Area),
			Value: rec.Area,
		})
	}
	return features
}
