package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventWriter publishes a keyed event
type EventWriter interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// EventPublisher handles publishing domain events
type EventPublisher struct {
	writer EventWriter
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(writer EventWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

func cartKey(sessionID string) string { return fmt.Sprintf("cart-%s", sessionID) }

func checkoutKey(reference string) string { return fmt.Sprintf("checkout-%s", reference) }

// PublishCartUpdated publishes CartUpdated event
func (ep *EventPublisher) PublishCartUpdated(ctx context.Context, event *models.CartUpdatedEvent) error {
	return ep.writer.PublishEvent(ctx, cartKey(event.SessionID), event)
}

// PublishCheckoutCreated publishes CheckoutCreated event
func (ep *EventPublisher) PublishCheckoutCreated(ctx context.Context, event *models.CheckoutCreatedEvent) error {
	return ep.writer.PublishEvent(ctx, checkoutKey(event.Reference), event)
}

// PublishCheckoutSignal queues a completion signal for the worker
func (ep *EventPublisher) PublishCheckoutSignal(ctx context.Context, event *models.CheckoutSignalEvent) error {
	return ep.writer.PublishEvent(ctx, checkoutKey(event.Signal.Reference), event)
}

// PublishCheckoutCompleted publishes CheckoutCompleted event
func (ep *EventPublisher) PublishCheckoutCompleted(ctx context.Context, event *models.CheckoutCompletedEvent) error {
	return ep.writer.PublishEvent(ctx, checkoutKey(event.Reference), event)
}

// PublishCheckoutCancelled publishes CheckoutCancelled event
func (ep *EventPublisher) PublishCheckoutCancelled(ctx context.Context, event *models.CheckoutCancelledEvent) error {
	return ep.writer.PublishEvent(ctx, checkoutKey(event.Reference), event)
}

// EventHandler handles incoming events
type EventHandler struct {
	onCheckoutSignal func(context.Context, *models.CheckoutSignalEvent) error
	logger           *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnCheckoutSignal registers a handler for CheckoutSignal events
func (eh *EventHandler) OnCheckoutSignal(handler func(context.Context, *models.CheckoutSignalEvent) error) {
	eh.onCheckoutSignal = handler
}

// HandleMessage routes messages to appropriate handlers. Events without a
// registered handler are acknowledged and skipped.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Debug("Handling event",
		zap.String("type", baseEvent.EventType),
		zap.String("id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeCheckoutSignal:
		if eh.onCheckoutSignal != nil {
			var event models.CheckoutSignalEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal CheckoutSignal event: %w", err)
			}
			return eh.onCheckoutSignal(ctx, &event)
		}
	}

	return nil
}
