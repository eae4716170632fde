package source_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/contracts"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

const maxBodyBytes = 32 << 20

// PropertySourceAPIClient fetches the whole property list from the CMS
// endpoint in one GET.
type PropertySourceAPIClient struct {
	url        string
	httpClient *http.Client
}

var _ port.PropertySourcePort = (*PropertySourceAPIClient)(nil)

func NewPropertySourceAPIClient(url string, timeout time.Duration) *PropertySourceAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PropertySourceAPIClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *PropertySourceAPIClient) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// FetchRecords implements port.PropertySourcePort. Transport and status
// failures wrap domain.ErrSourceUnavailable. Items that do not decode as a
// record are dropped with a warning; the rest of the list is kept.
func (c *PropertySourceAPIClient) FetchRecords(ctx context.Context) ([]domain.RawRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "PropertySourceAPIClient",
		"method":    "FetchRecords",
	})

	started := time.Now()
	resp, err := c.doRequest(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to property source", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		clientLogger.Error("Failed to read response body", err, nil)
		return nil, fmt.Errorf("%w: failed to read body: %v", domain.ErrSourceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("property source returned non-200 status: %d, body: %s", resp.StatusCode, truncate(body, 512))
		clientLogger.Error("Received non-OK response from property source", err, port.Fields{"status_code": resp.StatusCode})
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	if err := contracts.ValidatePropertyList(body); err != nil {
		clientLogger.Error("Property source payload failed validation", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	items, err := splitItems(body)
	if err != nil {
		clientLogger.Error("Failed to decode response from property source", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	records := make([]domain.RawRecord, 0, len(items))
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			clientLogger.Warn("Skipping null item", port.Fields{"position": i})
			continue
		}
		var rec domain.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			clientLogger.Warn("Skipping undecodable item", port.Fields{"position": i, "reason": err.Error()})
			continue
		}
		records = append(records, rec)
	}

	clientLogger.Debug("Property list fetched", port.Fields{
		"items":       len(items),
		"records":     len(records),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return records, nil
}

// splitItems accepts a bare array or an object wrapping it in data/result.
func splitItems(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return env.Result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
