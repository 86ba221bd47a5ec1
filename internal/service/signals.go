package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/checkout"
	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// QueueSignal validates a completion signal relayed by the client and hands
// it to the worker. Repeated signals for the same reference and type within
// the de-duplication window are accepted but not queued again.
func (s *CheckoutService) QueueSignal(ctx context.Context, sig models.Signal) error {
	ctx, span := util.StartSpan(ctx, "CheckoutService.QueueSignal")
	defer span.End()

	sig, err := normalizeSignal(sig)
	if err != nil {
		return err
	}

	if _, err := s.GetSession(ctx, sig.Reference); err != nil {
		return err
	}

	dedupeKey := fmt.Sprintf("signal:%s:%s", sig.Reference, sig.Type)
	first, err := s.coord.SetIdempotencyKey(ctx, dedupeKey, "1", s.settings.SignalDedupeTTL)
	if err != nil {
		s.logger.Warn("Signal de-duplication unavailable", zap.Error(err))
	} else if !first {
		s.logger.Info("Duplicate checkout signal ignored",
			zap.String("reference", sig.Reference),
			zap.String("type", sig.Type))
		return nil
	}

	event := &models.CheckoutSignalEvent{
		BaseEvent: newBaseEvent(models.EventTypeCheckoutSignal),
		Signal:    sig,
	}
	if err := s.events.PublishCheckoutSignal(ctx, event); err != nil {
		return fmt.Errorf("failed to queue checkout signal: %w", err)
	}
	return nil
}

// HandleSignalEvent applies a queued signal once per event id
func (s *CheckoutService) HandleSignalEvent(ctx context.Context, event *models.CheckoutSignalEvent) error {
	ctx, span := util.StartSpan(ctx, "CheckoutService.HandleSignalEvent")
	defer span.End()

	if event.EventID != "" {
		processed, err := s.sessions.IsEventProcessed(ctx, event.EventID)
		if err != nil {
			return fmt.Errorf("failed to check event processed: %w", err)
		}
		if processed {
			s.logger.Info("Event already processed", zap.String("event_id", event.EventID))
			return nil
		}
	}

	if err := s.HandleSignal(ctx, event.Signal); err != nil {
		if errors.Is(err, ErrUnknownReference) || checkout.IsValidation(err) {
			s.logger.Warn("Dropping unusable checkout signal",
				zap.String("event_id", event.EventID),
				zap.String("reference", event.Signal.Reference),
				zap.Error(err))
			return s.markProcessed(ctx, event.EventID)
		}
		return err
	}
	return s.markProcessed(ctx, event.EventID)
}

// HandleSignal applies a completion or cancellation to the referenced
// session. Completion clears the originating cart for overlay modes;
// cancellation leaves the cart untouched. Settled sessions are not changed.
func (s *CheckoutService) HandleSignal(ctx context.Context, sig models.Signal) error {
	sig, err := normalizeSignal(sig)
	if err != nil {
		return err
	}

	session, err := s.GetSession(ctx, sig.Reference)
	if err != nil {
		return err
	}

	status := models.CheckoutStatusCompleted
	if sig.Type == models.SignalCancel {
		status = models.CheckoutStatusCancelled
	}

	// Clear before settling: once the status leaves PENDING a retried
	// signal no longer reaches the clear.
	clearCart := status == models.CheckoutStatusCompleted &&
		session.Status == models.CheckoutStatusPending &&
		session.SessionID != "" &&
		!models.ClearsOnRedirect(session.Mode)
	if clearCart {
		if err := s.carts.Session(session.SessionID).ClearCart(ctx); err != nil {
			return fmt.Errorf("failed to clear cart after checkout: %w", err)
		}
	}

	changed, err := s.sessions.UpdateSessionStatus(ctx, sig.Reference, status)
	if err != nil {
		return err
	}
	if !changed {
		s.logger.Info("Checkout session already settled",
			zap.String("reference", sig.Reference),
			zap.String("status", session.Status))
		return nil
	}

	util.CheckoutSignalsTotal.WithLabelValues(sig.Type).Inc()
	s.logger.Info("Checkout signal applied",
		zap.String("reference", sig.Reference),
		zap.String("session_id", session.SessionID),
		zap.String("status", status))

	if status == models.CheckoutStatusCancelled {
		event := &models.CheckoutCancelledEvent{
			BaseEvent: newBaseEvent(models.EventTypeCheckoutCancelled),
			Reference: sig.Reference,
		}
		if err := s.events.PublishCheckoutCancelled(ctx, event); err != nil {
			s.logger.Error("Failed to publish CheckoutCancelled event", zap.Error(err))
		}
		return nil
	}

	event := &models.CheckoutCompletedEvent{
		BaseEvent: newBaseEvent(models.EventTypeCheckoutCompleted),
		Reference: sig.Reference,
		SessionID: session.SessionID,
	}
	if err := s.events.PublishCheckoutCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish CheckoutCompleted event", zap.Error(err))
	}
	return nil
}

func (s *CheckoutService) markProcessed(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	if _, err := s.sessions.MarkEventProcessed(ctx, eventID, models.EventTypeCheckoutSignal); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func normalizeSignal(sig models.Signal) (models.Signal, error) {
	sig.Type = sig.NormalizedType()
	sig.Reference = strings.TrimSpace(sig.Reference)
	if sig.Type != models.SignalComplete && sig.Type != models.SignalCancel {
		return sig, &checkout.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("Unknown signal type %q", sig.Type),
			Err:     ErrUnknownSignal,
		}
	}
	if sig.Reference == "" {
		return sig, &checkout.ValidationError{Field: "reference", Message: "Reference is required", Err: ErrReferenceRequired}
	}
	return sig, nil
}
