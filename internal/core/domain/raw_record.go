package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// RawRecord - property record exactly as the upstream source delivers it.
// Localized field names come first, canonical aliases second; the normalizer
// decides which one wins. Every field is optional.
type RawRecord struct {
	ID    *string `json:"id,omitempty"`
	DocID *string `json:"_id,omitempty"`

	Titulo *string `json:"titulo,omitempty"`
	Title  *string `json:"title,omitempty"`

	Preco *FlexNumber `json:"preco,omitempty"`
	Price *FlexNumber `json:"price,omitempty"`

	Finalidade      *string `json:"finalidade,omitempty"`
	TransactionType *string `json:"transactionType,omitempty"`

	TipoImovel   *string `json:"tipoImovel,omitempty"`
	PropertyType *string `json:"propertyType,omitempty"`

	Bairro   *string      `json:"bairro,omitempty"`
	Cidade   *string      `json:"cidade,omitempty"`
	Location *RawLocation `json:"location,omitempty"`

	Dormitorios  *FlexNumber `json:"dormitorios,omitempty"`
	Bedrooms     *FlexNumber `json:"bedrooms,omitempty"`
	Banheiros    *FlexNumber `json:"banheiros,omitempty"`
	Bathrooms    *FlexNumber `json:"bathrooms,omitempty"`
	Vagas        *FlexNumber `json:"vagas,omitempty"`
	ParkingSpots *FlexNumber `json:"parkingSpots,omitempty"`
	AreaUtil     *FlexNumber `json:"areaUtil,omitempty"`
	Area         *FlexNumber `json:"area,omitempty"`

	Destaque *bool `json:"destaque,omitempty"`
	Featured *bool `json:"featured,omitempty"`

	Slug *RawSlug `json:"slug,omitempty"`

	Descricao   *string `json:"descricao,omitempty"`
	Description *string `json:"description,omitempty"`

	Imagem    *RawImage  `json:"imagem,omitempty"`
	MainImage *RawImage  `json:"mainImage,omitempty"`
	ImagemURL *string    `json:"imagemUrl,omitempty"`
	Galeria   []RawImage `json:"galeria,omitempty"`
	Images    []RawImage `json:"images,omitempty"`

	Localizacao *RawGeoPoint `json:"localizacao,omitempty"`

	CreatedAt   *time.Time `json:"_createdAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// RawImage covers both the asset-reference shape ({asset: {url}}) and the
// flat shape ({url}).
type RawImage struct {
	Asset *struct {
		URL string `json:"url"`
	} `json:"asset,omitempty"`
	URL       string `json:"url,omitempty"`
	ImagemURL string `json:"imagemUrl,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// ResolvedURL returns the first non-empty url of the image, or "".
func (i *RawImage) ResolvedURL() string {
	if i == nil {
		return ""
	}
	if i.Asset != nil && strings.TrimSpace(i.Asset.URL) != "" {
		return strings.TrimSpace(i.Asset.URL)
	}
	if strings.TrimSpace(i.URL) != "" {
		return strings.TrimSpace(i.URL)
	}
	return strings.TrimSpace(i.ImagemURL)
}

type RawGeoPoint struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// RawLocation accepts either a flat string ("Centro, Guararema") or an object.
type RawLocation struct {
	Flat         string
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
}

func (l *RawLocation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &l.Flat)
	}
	var obj struct {
		Neighborhood string `json:"neighborhood"`
		City         string `json:"city"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// unknown shape, leave empty
		return nil
	}
	l.Neighborhood = obj.Neighborhood
	l.City = obj.City
	return nil
}

// RawSlug accepts "casa-centro" as well as {"current": "casa-centro"}.
type RawSlug struct {
	Current string
}

func (s *RawSlug) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &s.Current)
	}
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	s.Current = obj.Current
	return nil
}

// FlexNumber decodes JSON numbers, numeric strings ("500000", "1.234,5" is not
// supported) and null. Anything unparsable decodes as an unset value.
type FlexNumber struct {
	Value float64
	Valid bool
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	n.Value = v
	n.Valid = true
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Num is a helper for building raw records in code.
func Num(v float64) *FlexNumber {
	return &FlexNumber{Value: v, Valid: true}
}

// Str is a helper for building raw records in code.
func Str(s string) *string {
	return &s
}
