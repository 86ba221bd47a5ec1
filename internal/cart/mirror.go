package cart

import (
	"context"
	"time"

	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher delivers cart events outside the process
type Publisher interface {
	PublishCartUpdated(ctx context.Context, event *models.CartUpdatedEvent) error
}

// Mirror forwards cart changes to a Publisher from a background goroutine so
// slow brokers never hold a cart lock.
type Mirror struct {
	publisher Publisher
	queue     chan Change
	timeout   time.Duration
}

// NewMirror creates a mirror buffering up to size changes
func NewMirror(publisher Publisher, size int) *Mirror {
	if size <= 0 {
		size = 256
	}
	return &Mirror{
		publisher: publisher,
		queue:     make(chan Change, size),
		timeout:   5 * time.Second,
	}
}

// Listen queues a change. Changes are dropped when the buffer is full.
func (m *Mirror) Listen(c Change) {
	select {
	case m.queue <- c:
	default:
		util.GetLogger().Warn("Cart mirror buffer full, dropping change",
			zap.String("session_id", c.SessionID),
			zap.String("op", c.Op))
	}
}

// Run publishes queued changes until ctx is cancelled
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-m.queue:
			m.publish(ctx, c)
		}
	}
}

func (m *Mirror) publish(ctx context.Context, c Change) {
	pubCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	event := &models.CartUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCartUpdated,
			Timestamp: time.Now(),
		},
		SessionID: c.SessionID,
		Op:        c.Op,
		Lines:     c.Lines,
		Count:     c.Count,
	}
	if err := m.publisher.PublishCartUpdated(pubCtx, event); err != nil {
		util.GetLogger().Error("Failed to publish cart update",
			zap.String("session_id", c.SessionID),
			zap.Error(err))
	}
}
