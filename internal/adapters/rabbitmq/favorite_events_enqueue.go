package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/internal/constants"
	"catalog-service/internal/contextkeys"
	"catalog-service/internal/contracts"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// FavoriteEventDTO - body of favorites.added / favorites.removed messages.
type FavoriteEventDTO struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is satisfied by *rabbitmq_producer.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type FavoriteEventsAdapter struct {
	producer Publisher
}

var _ port.FavoriteEventsPort = (*FavoriteEventsAdapter)(nil)

func NewFavoriteEventsAdapter(producer Publisher) (*FavoriteEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &FavoriteEventsAdapter{producer: producer}, nil
}

func routingKeyFor(t domain.FavoriteEventType) (string, error) {
	switch t {
	case domain.FavoriteAdded:
		return constants.RoutingKeyFavoriteAdded, nil
	case domain.FavoriteRemoved:
		return constants.RoutingKeyFavoriteRemoved, nil
	default:
		return "", fmt.Errorf("rabbitmq adapter: unknown favorite event type %q", t)
	}
}

func (a *FavoriteEventsAdapter) PublishFavoriteEvent(ctx context.Context, event domain.FavoriteEvent) error {
	routingKey, err := routingKeyFor(event.Type)
	if err != nil {
		return err
	}

	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "FavoriteEventsAdapter",
		"routing_key": routingKey,
		"property_id": event.PropertyID,
	})

	dto := FavoriteEventDTO{
		EventType:  string(event.Type),
		UserID:     event.UserID.String(),
		PropertyID: event.PropertyID,
		OccurredAt: event.OccurredAt.UTC(),
	}
	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal favorite event: %w", err)
	}
	if err := contracts.ValidateFavoriteEvent(body); err != nil {
		adapterLogger.Error("Favorite event does not match its schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			constants.HeaderEventType:    contracts.FavoriteChangedEvent,
			constants.HeaderEventVersion: contracts.VersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing favorite event", nil)
	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish favorite event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s event: %w", event.Type, err)
	}

	adapterLogger.Info("Favorite event published", nil)
	return nil
}
