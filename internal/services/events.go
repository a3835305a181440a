package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// EventSink receives generation lifecycle events. *EventPublisher is the
// production implementation.
type EventSink interface {
	PublishCompleted(ctx context.Context, userID uuid.UUID, event models.CompletedEvent)
	PublishError(ctx context.Context, userID uuid.UUID, event models.ErrorEvent)
}

// EventPublisher fans generation lifecycle events out to the user's open
// WebSocket connections via Redis pub/sub.
type EventPublisher struct {
	redis *redis.Client
}

func NewEventPublisher(redisClient *redis.Client) *EventPublisher {
	return &EventPublisher{redis: redisClient}
}

func (p *EventPublisher) Publish(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	p.redis.Publish(ctx, fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}

func (p *EventPublisher) PublishCompleted(ctx context.Context, userID uuid.UUID, event models.CompletedEvent) {
	p.Publish(ctx, userID, models.WSMessage{Type: "generation_completed", Payload: event})
}

func (p *EventPublisher) PublishError(ctx context.Context, userID uuid.UUID, event models.ErrorEvent) {
	p.Publish(ctx, userID, models.WSMessage{Type: "generation_error", Payload: event})
}
