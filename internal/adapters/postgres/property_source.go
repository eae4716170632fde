package postgres_adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPropertySource reads raw CMS documents stored as jsonb. It returns
// every row; filtering stays in the listing pipeline.
type PostgresPropertySource struct {
	pool *pgxpool.Pool
}

var _ port.PropertySourcePort = (*PostgresPropertySource)(nil)

func NewPostgresPropertySource(pool *pgxpool.Pool) (*PostgresPropertySource, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertySource{pool: pool}, nil
}

func (s *PostgresPropertySource) FetchRecords(ctx context.Context) ([]domain.RawRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPropertySource",
	})

	query := `SELECT id, data FROM catalog_raw_properties ORDER BY position, id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Failed to query raw properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	records := make([]domain.RawRecord, 0)
	for rows.Next() {
		var (
			rowID string
			data  []byte
		)
		if err := rows.Scan(&rowID, &data); err != nil {
			logger.Error("Failed to scan raw property row", err, nil)
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
		}

		rec, err := decodeStoredRecord(rowID, data)
		if err != nil {
			logger.Warn("Skipping undecodable raw property", port.Fields{"row_id": rowID, "reason": err.Error()})
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during raw properties iteration", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	logger.Debug("Raw properties loaded", port.Fields{"count": len(records)})
	return records, nil
}

// decodeStoredRecord decodes the jsonb document; the row key stands in for a
// document that carries no id of its own.
func decodeStoredRecord(rowID string, data []byte) (domain.RawRecord, error) {
	var rec domain.RawRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.RawRecord{}, err
	}
	if rec.ID == nil && rec.DocID == nil && rowID != "" {
		rec.ID = domain.Str(rowID)
	}
	return rec, nil
}
