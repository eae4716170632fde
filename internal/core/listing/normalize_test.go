package listing

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, payload string) []domain.RawRecord {
	t.Helper()
	var raws []domain.RawRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))
	return raws
}

func TestNormalize_MissingIDIsRejected(t *testing.T) {
	_, err := Normalize(domain.RawRecord{Titulo: domain.Str("Casa sem id")})
	assert.ErrorIs(t, err, domain.ErrMissingID)

	_, err = Normalize(domain.RawRecord{ID: domain.Str("   ")})
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestNormalize_DocumentIDIsAccepted(t *testing.T) {
	rec, err := Normalize(domain.RawRecord{DocID: domain.Str("abc")})
	require.NoError(t, err)
	assert.Equal(t, "abc", rec.ID)
	assert.Equal(t, "abc", rec.Slug)
}

func TestNormalize_DefaultsForMissingOptionalFields(t *testing.T) {
	rec, err := Normalize(domain.RawRecord{ID: domain.Str("1")})
	require.NoError(t, err)

	assert.Equal(t, "1", rec.ID)
	assert.Equal(t, "", rec.Title)
	assert.Zero(t, rec.Price)
	assert.Zero(t, rec.Area)
	assert.Zero(t, rec.Bedrooms)
	assert.Zero(t, rec.Bathrooms)
	assert.Zero(t, rec.ParkingSpots)
	assert.NotNil(t, rec.Images)
	assert.Empty(t, rec.Images)
	assert.Nil(t, rec.MainImage)
	assert.False(t, rec.Featured)
	assert.Equal(t, domain.TransactionSale, rec.TransactionType)
	assert.Equal(t, domain.Location{}, rec.Location)
	assert.True(t, rec.PublishedAt.IsZero())
}

func TestNormalize_LocalizedFields(t *testing.T) {
	raws := decodeRaw(t, `[{
		"_id": "imv-7",
		"titulo": "Casa com piscina",
		"slug": {"current": "casa-com-piscina"},
		"preco": "850000",
		"finalidade": "Venda",
		"tipoImovel": "casa",
		"bairro": "Centro",
		"cidade": "Guararema",
		"dormitorios": 3,
		"banheiros": 2,
		"vagas": 2,
		"areaUtil": 180.5,
		"destaque": true,
		"descricao": "Linda casa",
		"imagem": {"asset": {"url": "https://cdn/main.jpg"}, "alt": "Fachada"},
		"galeria": [{"asset": {"url": "https://cdn/1.jpg"}}, {"asset": {"url": ""}}],
		"localizacao": {"lat": -23.41, "lng": -46.03},
		"_createdAt": "2024-03-01T10:00:00Z"
	}]`)

	rec, err := Normalize(raws[0])
	require.NoError(t, err)

	assert.Equal(t, "imv-7", rec.ID)
	assert.Equal(t, "casa-com-piscina", rec.Slug)
	assert.Equal(t, 850000.0, rec.Price)
	assert.Equal(t, domain.TransactionSale, rec.TransactionType)
	assert.Equal(t, "Centro", rec.Location.Neighborhood)
	assert.Equal(t, "Guararema", rec.Location.City)
	assert.NotEmpty(t, rec.Location.Geohash)
	assert.Equal(t, 3, rec.Bedrooms)
	assert.Equal(t, 180.5, rec.Area)
	assert.True(t, rec.Featured)
	require.NotNil(t, rec.MainImage)
	assert.Equal(t, domain.Image{URL: "https://cdn/main.jpg", Alt: "Fachada"}, *rec.MainImage)
	assert.Equal(t, []domain.Image{{URL: "https://cdn/1.jpg"}}, rec.Images)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), rec.PublishedAt)
}

func TestNormalize_FlatLocationIsSplit(t *testing.T) {
	raws := decodeRaw(t, `[{"id": "1", "location": "Bairro do Tanque, Guararema"}, {"id": "2", "location": "Centro"}]`)

	first, err := Normalize(raws[0])
	require.NoError(t, err)
	assert.Equal(t, domain.Location{Neighborhood: "Bairro do Tanque", City: "Guararema"}, first.Location)

	second, err := Normalize(raws[1])
	require.NoError(t, err)
	assert.Equal(t, domain.Location{Neighborhood: "Centro"}, second.Location)
}

func TestNormalize_NegativeAndInvalidNumbersBecomeZero(t *testing.T) {
	raws := decodeRaw(t, `[{"id": "1", "preco": -10, "areaUtil": "n/a", "dormitorios": null}]`)

	rec, err := Normalize(raws[0])
	require.NoError(t, err)
	assert.Zero(t, rec.Price)
	assert.Zero(t, rec.Area)
	assert.Zero(t, rec.Bedrooms)
}

func TestNormalize_OutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		price     float64
		area      float64
		bedrooms  int
		bathrooms int
	}{
		{"infinite price", `{"id": "1", "preco": "Infinity"}`, 0, 0, 0, 0},
		{"negative infinite area", `{"id": "1", "areaUtil": "-Inf"}`, 0, 0, 0, 0},
		{"infinite area", `{"id": "1", "area": "+Inf"}`, 0, 0, 0, 0},
		{"huge counts are clamped", `{"id": "1", "dormitorios": 1e30, "banheiros": "1e19"}`, 0, 0, maxCount, maxCount},
		{"huge price is kept", `{"id": "1", "preco": 1e20}`, 1e20, 0, 0, 0},
		{"overflowing literal is invalid", `{"id": "1", "preco": "1e400"}`, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Normalize(decodeRaw(t, "["+tt.payload+"]")[0])
			require.NoError(t, err)

			assert.Equal(t, tt.price, rec.Price)
			assert.Equal(t, tt.area, rec.Area)
			assert.Equal(t, tt.bedrooms, rec.Bedrooms)
			assert.Equal(t, tt.bathrooms, rec.Bathrooms)
			assert.GreaterOrEqual(t, rec.ParkingSpots, 0)
		})
	}
}

func TestNormalize_ImageURLFallback(t *testing.T) {
	rec, err := Normalize(domain.RawRecord{ID: domain.Str("1"), ImagemURL: domain.Str("https://cdn/x.jpg")})
	require.NoError(t, err)
	require.NotNil(t, rec.MainImage)
	assert.Equal(t, "https://cdn/x.jpg", rec.MainImage.URL)
}

func TestNormalizeAll_DropsRecordsWithoutID(t *testing.T) {
	raws := decodeRaw(t, `[{"id": "1"}, {"titulo": "sem id"}, {"id": "3"}]`)

	records := NormalizeAll(context.Background(), raws)

	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "3", records[1].ID)
}

type warnRecorder struct {
	warnings []string
}

func (w *warnRecorder) Info(string, port.Fields) {}
func (w *warnRecorder) Warn(msg string, _ port.Fields) { w.warnings = append(w.warnings, msg) }
func (w *warnRecorder) Error(string, error, port.Fields) {}
func (w *warnRecorder) Debug(string, port.Fields) {}
func (w *warnRecorder) WithFields(port.Fields) port.LoggerPort { return w }

func TestNormalizeAll_KeepsDuplicateIDsAndWarns(t *testing.T) {
	raws := decodeRaw(t, `[{"id": "1", "titulo": "A"}, {"id": "2"}, {"id": "1", "titulo": "B"}]`)
	logger := &warnRecorder{}

	records := NormalizeAll(contextkeys.ContextWithLogger(context.Background(), logger), raws)

	assert.Equal(t, []string{"1", "2", "1"}, ids(records))
	assert.Equal(t, []string{"Duplicate record id in source"}, logger.warnings)
}

func TestDeriveTransactionType(t *testing.T) {
	tests := []struct {
		finality string
		want     domain.TransactionType
	}{
		{"Aluguel", domain.TransactionRent},
		{"Venda e Aluguel residencial", domain.TransactionRent},
		{"LOCAÇÃO", domain.TransactionRent},
		{"for rent", domain.TransactionRent},
		{"Venda", domain.TransactionSale},
		{"", domain.TransactionSale},
	}
	for _, tt := range tests {
		t.Run(tt.finality, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTransactionType(tt.finality))
		})
	}
}
