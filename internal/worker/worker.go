package worker

import (
	"context"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// MessageSource delivers broker messages to a handler until ctx ends
type MessageSource interface {
	StartConsuming(ctx context.Context, handler broker.MessageHandler) error
	Close() error
}

// SignalApplier applies queued checkout signals
type SignalApplier interface {
	HandleSignalEvent(ctx context.Context, event *models.CheckoutSignalEvent) error
}

// SignalWorker applies checkout completion signals in the background
type SignalWorker struct {
	source       MessageSource
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewSignalWorker creates a new signal worker
func NewSignalWorker(source MessageSource, applier SignalApplier) *SignalWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnCheckoutSignal(applier.HandleSignalEvent)

	return &SignalWorker{
		source:       source,
		eventHandler: eventHandler,
		logger:       util.GetLogger(),
	}
}

// Start starts the worker
func (w *SignalWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting signal worker")
	return w.source.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *SignalWorker) Stop() error {
	w.logger.Info("Stopping signal worker")
	return w.source.Close()
}
