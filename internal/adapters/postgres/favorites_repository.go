package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresFavoritesRepository - port.FavoritesRepositoryPort over user_favorites.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

var _ port.FavoritesRepositoryPort = (*PostgresFavoritesRepository)(nil)

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

func (r *PostgresFavoritesRepository) logger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	base := port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    method,
	}
	for k, v := range fields {
		base[k] = v
	}
	return contextkeys.LoggerFromContext(ctx).WithFields(base)
}

// Add is idempotent: adding an existing favorite succeeds.
func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID uuid.UUID, propertyID string) error {
	repoLogger := r.logger(ctx, "Add", port.Fields{"user_id": userID, "property_id": propertyID})

	repoLogger.Debug("Attempting to add to favorites.", nil)
	query := `INSERT INTO user_favorites (user_id, property_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			repoLogger.Warn("Favorite already exists, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites.", nil)
	return nil
}

func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID uuid.UUID, propertyID string) error {
	repoLogger := r.logger(ctx, "Remove", port.Fields{"user_id": userID, "property_id": propertyID})

	query := `DELETE FROM user_favorites WHERE user_id = $1 AND property_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
	} else {
		repoLogger.Debug("Successfully removed from favorites.", nil)
	}
	return nil
}

func (r *PostgresFavoritesRepository) FindFavoriteIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	repoLogger := r.logger(ctx, "FindFavoriteIDsByUser", port.Fields{"user_id": userID})

	query := `SELECT property_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at DESC, property_id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		repoLogger.Error("Failed to read favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to read favorite IDs: %w", err)
	}
	return ids, nil
}

// FindPaginatedByUser returns one page of favorite ids, newest first. Count
// and page are read in one transaction so they agree.
func (r *PostgresFavoritesRepository) FindPaginatedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error) {
	repoLogger := r.logger(ctx, "FindPaginatedByUser", port.Fields{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	})

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result := &domain.PaginatedFavoriteIDs{
		PropertyIDs:  []string{},
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}

	countQuery := `SELECT COUNT(*) FROM user_favorites WHERE user_id = $1`
	if err := tx.QueryRow(ctx, countQuery, userID).Scan(&result.TotalCount); err != nil {
		repoLogger.Error("Failed to count favorites", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	if result.TotalCount == 0 {
		return result, nil
	}

	dataQuery := `SELECT property_id FROM user_favorites WHERE user_id = $1
		ORDER BY created_at DESC, property_id LIMIT $2 OFFSET $3`
	rows, err := tx.Query(ctx, dataQuery, userID, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		repoLogger.Error("Failed to read favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to read favorite IDs: %w", err)
	}
	result.PropertyIDs = ids

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Successfully found paginated favorites.", port.Fields{"found_on_page": len(ids)})
	return result, nil
}
