package source_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) (*httptest.Server, <-chan http.Header) {
	t.Helper()
	headers := make(chan http.Header, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case headers <- r.Header.Clone():
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, headers
}

func TestFetchRecords_BareArray(t *testing.T) {
	srv, headers := serve(t, http.StatusOK, `[
		{"id": "1", "titulo": "Casa", "preco": 500000},
		{"_id": "2", "title": "Apto", "price": "300000", "location": "Centro, Mogi"},
		null
	]`)
	client := NewPropertySourceAPIClient(srv.URL, time.Second)

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-42")
	records, err := client.FetchRecords(ctx)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", *records[0].ID)
	assert.Equal(t, 500000.0, records[0].Preco.Value)
	assert.Equal(t, "2", *records[1].DocID)
	assert.Equal(t, "Centro, Mogi", records[1].Location.Flat)
	seen := <-headers
	assert.Equal(t, "trace-42", seen.Get("X-Trace-ID"))
	assert.Equal(t, "application/json", seen.Get("Accept"))
}

func TestFetchRecords_WrappedPayload(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"data": [{"id": "1"}], "total": 1}`)

	records, err := NewPropertySourceAPIClient(srv.URL, time.Second).FetchRecords(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFetchRecords_RecordWithoutIDIsPassedOn(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `[{"titulo": "sem id"}]`)

	records, err := NewPropertySourceAPIClient(srv.URL, time.Second).FetchRecords(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 1, "dropping records without id is the normalizer's job")
}

func TestFetchRecords_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`},
		{"not found", http.StatusNotFound, ``},
		{"wrong shape", http.StatusOK, `{"items": []}`},
		{"not json", http.StatusOK, `<html></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body)

			_, err := NewPropertySourceAPIClient(srv.URL, time.Second).FetchRecords(context.Background())

			assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
		})
	}
}

func TestFetchRecords_Unreachable(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	_, err := NewPropertySourceAPIClient(url, time.Second).FetchRecords(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestFetchRecords_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewPropertySourceAPIClient(srv.URL, 5*time.Second).FetchRecords(ctx)

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
