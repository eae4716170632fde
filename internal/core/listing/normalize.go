package listing

import (
	"context"
	"math"
	"strings"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/mmcloughlin/geohash"
)

// maxCount caps bedrooms, bathrooms and parking spots.
const maxCount = 999

var rentKeywords = []string{"aluguel", "locacao", "locação", "rent"}

// Normalize maps one raw record into the canonical shape. The only failure is
// a record without id; every other gap is filled with its default.
func Normalize(raw domain.RawRecord) (domain.PropertyRecord, error) {
	id := firstNonEmpty(raw.ID, raw.DocID)
	if id == "" {
		return domain.PropertyRecord{}, domain.ErrMissingID
	}

	rec := domain.PropertyRecord{
		ID:              id,
		Title:           firstNonEmpty(raw.Titulo, raw.Title),
		Price:           nonNegative(firstNumber(raw.Preco, raw.Price)),
		Location:        normalizeLocation(raw),
		PropertyType:    firstNonEmpty(raw.TipoImovel, raw.PropertyType),
		TransactionType: DeriveTransactionType(firstNonEmpty(raw.Finalidade, raw.TransactionType)),
		Bedrooms:        roomCount(firstNumber(raw.Dormitorios, raw.Bedrooms)),
		Bathrooms:       roomCount(firstNumber(raw.Banheiros, raw.Bathrooms)),
		ParkingSpots:    roomCount(firstNumber(raw.Vagas, raw.ParkingSpots)),
		Area:            nonNegative(firstNumber(raw.AreaUtil, raw.Area)),
		Images:          normalizeGallery(raw),
		MainImage:       normalizeMainImage(raw),
		Featured:        isTrue(raw.Destaque) || isTrue(raw.Featured),
		Description:     firstNonEmpty(raw.Descricao, raw.Description),
		PublishedAt:     firstTime(raw.PublishedAt, raw.CreatedAt),
	}

	rec.Slug = id
	if raw.Slug != nil && strings.TrimSpace(raw.Slug.Current) != "" {
		rec.Slug = strings.TrimSpace(raw.Slug.Current)
	}

	return rec, nil
}

// NormalizeAll normalizes a fetched list. Records that cannot be normalized
// are dropped and logged; the order of the rest is preserved.
func NormalizeAll(ctx context.Context, raws []domain.RawRecord) []domain.PropertyRecord {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "Normalizer"})

	out := make([]domain.PropertyRecord, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			logger.Warn("Dropping raw record that cannot be normalized", port.Fields{
				"position": i,
				"reason":   err.Error(),
				"title":    firstNonEmpty(raw.Titulo, raw.Title),
			})
			continue
		}
		// duplicates are kept, lookups by id resolve to the first one
		if first, dup := seen[rec.ID]; dup {
			logger.Warn("Duplicate record id in source", port.Fields{
				"id":             rec.ID,
				"position":       i,
				"first_position": first,
			})
		} else {
			seen[rec.ID] = i
		}
		out = append(out, rec)
	}

	if dropped := len(raws) - len(out); dropped > 0 {
		logger.Info("Normalization finished with dropped records", port.Fields{
			"received": len(raws),
			"dropped":  dropped,
		})
	}
	return out
}

// DeriveTransactionType inspects a free-text finality field. This is a keyword
// heuristic: anything that does not look like a rental is a sale.
func DeriveTransactionType(finality string) domain.TransactionType {
	folded := fold(finality)
	for _, kw := range rentKeywords {
		if strings.Contains(folded, kw) {
			return domain.TransactionRent
		}
	}
	return domain.TransactionSale
}

func normalizeLocation(raw domain.RawRecord) domain.Location {
	loc := domain.Location{
		Neighborhood: firstNonEmpty(raw.Bairro),
		City:         firstNonEmpty(raw.Cidade),
	}

	if raw.Location != nil {
		if loc.Neighborhood == "" {
			loc.Neighborhood = strings.TrimSpace(raw.Location.Neighborhood)
		}
		if loc.City == "" {
			loc.City = strings.TrimSpace(raw.Location.City)
		}
		if loc.Neighborhood == "" && loc.City == "" && raw.Location.Flat != "" {
			loc.Neighborhood, loc.City = splitFlatLocation(raw.Location.Flat)
		}
	}

	if p := raw.Localizacao; p != nil && p.Lat != nil && p.Lng != nil {
		lat, lng := *p.Lat, *p.Lng
		if lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 && !(lat == 0 && lng == 0) {
			loc.Geohash = geohash.Encode(lat, lng)
		}
	}
	return loc
}

// splitFlatLocation turns "Bairro do Tanque, Guararema" into its two parts.
// Without a comma the whole string is treated as the neighborhood.
func splitFlatLocation(flat string) (neighborhood, city string) {
	flat = strings.TrimSpace(flat)
	idx := strings.LastIndex(flat, ",")
	if idx < 0 {
		return flat, ""
	}
	return strings.TrimSpace(flat[:idx]), strings.TrimSpace(flat[idx+1:])
}

func normalizeGallery(raw domain.RawRecord) []domain.Image {
	images := make([]domain.Image, 0, len(raw.Galeria)+len(raw.Images))
	for _, src := range [][]domain.RawImage{raw.Galeria, raw.Images} {
		for i := range src {
			if url := src[i].ResolvedURL(); url != "" {
				images = append(images, domain.Image{URL: url, Alt: strings.TrimSpace(src[i].Alt)})
			}
		}
	}
	return images
}

func normalizeMainImage(raw domain.RawRecord) *domain.Image {
	for _, candidate := range []*domain.RawImage{raw.Imagem, raw.MainImage} {
		if url := candidate.ResolvedURL(); url != "" {
			return &domain.Image{URL: url, Alt: strings.TrimSpace(candidate.Alt)}
		}
	}
	if url := firstNonEmpty(raw.ImagemURL); url != "" {
		return &domain.Image{URL: url}
	}
	return nil
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil {
			if s := strings.TrimSpace(*v); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstNumber(values ...*domain.FlexNumber) float64 {
	for _, v := range values {
		if v != nil && v.Valid {
			return v.Value
		}
	}
	return 0
}

func firstTime(values ...*time.Time) time.Time {
	for _, v := range values {
		if v != nil && !v.IsZero() {
			return *v
		}
	}
	return time.Time{}
}

// nonNegative maps negative, NaN and infinite values to 0.
func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// roomCount converts a room or parking count, clamped to maxCount.
func roomCount(v float64) int {
	v = nonNegative(v)
	if v > maxCount {
		return maxCount
	}
	return int(v)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
