package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// Mutation names reported to listeners and metrics
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
	OpClear  = "clear"
)

// Change describes a persisted cart mutation
type Change struct {
	SessionID string
	Op        string
	Lines     []models.CartLine
	Count     int
}

// Listener receives cart changes. Listeners run synchronously while the cart
// is locked and must not mutate the same cart.
type Listener func(Change)

// MaxQuantity is the largest quantity a single cart line may hold
const MaxQuantity = 9999

// ErrQuantityLimit is returned when a line would exceed MaxQuantity
var ErrQuantityLimit = fmt.Errorf("quantity may not exceed %d", MaxQuantity)

// Store is the cart of a single session. Every mutation loads the stored
// cart, applies the change, persists it and then notifies listeners.
// Handles for the same session obtained from one Manager share their lock
// and subscribers.
type Store struct {
	sessionID string
	key       string
	storage   Storage
	hub       *hub
}

// NewStore creates a standalone cart for sessionID persisted under key
func NewStore(sessionID, key string, storage Storage) *Store {
	return &Store{sessionID: sessionID, key: key, storage: storage, hub: newHub()}
}

// SessionID returns the cart session identifier
func (s *Store) SessionID() string { return s.sessionID }

// Key returns the storage key
func (s *Store) Key() string { return s.key }

// GetCart returns a snapshot of the cart lines. Missing or unreadable data
// yields an empty cart.
func (s *Store) GetCart(ctx context.Context) []models.CartLine {
	defer s.hub.lock(s.sessionID)()
	return s.load(ctx)
}

// GetCartCount returns the sum of all line quantities
func (s *Store) GetCartCount(ctx context.Context) int {
	return Count(s.GetCart(ctx))
}

// AddToCart increments the quantity of productID or adds it with quantity 1.
// A line already at MaxQuantity is left unchanged and ErrQuantityLimit returned.
func (s *Store) AddToCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpAdd, func(lines []models.CartLine) ([]models.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				if lines[i].Quantity >= MaxQuantity {
					return nil, ErrQuantityLimit
				}
				lines[i].Quantity++
				return lines, nil
			}
		}
		return append(lines, models.CartLine{ProductID: productID, Quantity: 1}), nil
	})
}

// UpdateQuantity sets the quantity of productID. A quantity of zero or less
// removes the line; a positive quantity for an absent product adds it.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.mutate(ctx, OpRemove, removeLine(productID))
	}
	if quantity > MaxQuantity {
		return ErrQuantityLimit
	}
	return s.mutate(ctx, OpUpdate, func(lines []models.CartLine) ([]models.CartLine, error) {
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity = quantity
				return lines, nil
			}
		}
		return append(lines, models.CartLine{ProductID: productID, Quantity: quantity}), nil
	})
}

// RemoveFromCart deletes the line for productID if present
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, OpRemove, removeLine(productID))
}

// ClearCart removes every line
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, OpClear, func([]models.CartLine) ([]models.CartLine, error) {
		return []models.CartLine{}, nil
	})
}

// Subscribe registers fn for changes to this cart and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	unsubscribe := s.hub.subscribe(s.sessionID, fn)
	util.CartSubscribers.Inc()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			util.CartSubscribers.Dec()
		})
	}
}

func (s *Store) mutate(ctx context.Context, op string, apply func([]models.CartLine) ([]models.CartLine, error)) error {
	defer s.hub.lock(s.sessionID)()

	lines, err := apply(s.load(ctx))
	if err != nil {
		return err
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		util.CartPersistFailures.Inc()
		util.GetLogger().Error("Failed to persist cart",
			zap.String("session_id", s.sessionID),
			zap.String("op", op),
			zap.Error(err))
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	util.CartMutationsTotal.WithLabelValues(op).Inc()
	s.notify(Change{SessionID: s.sessionID, Op: op, Lines: lines, Count: Count(lines)})
	return nil
}

func (s *Store) notify(change Change) {
	for _, sub := range s.hub.subscribers(s.sessionID) {
		sub.fn(snapshot(change))
	}
	if s.hub.broadcast != nil {
		s.hub.broadcast(snapshot(change))
	}
}

func (s *Store) load(ctx context.Context) []models.CartLine {
	logger := util.GetLogger()

	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		util.CartLoadFallbacks.WithLabelValues("storage").Inc()
		logger.Warn("Cart storage unavailable, using empty cart",
			zap.String("session_id", s.sessionID),
			zap.Error(err))
		return []models.CartLine{}
	}
	if len(data) == 0 {
		return []models.CartLine{}
	}

	var stored []models.CartLine
	if err := json.Unmarshal(data, &stored); err != nil {
		util.CartLoadFallbacks.WithLabelValues("corrupt").Inc()
		logger.Warn("Stored cart is corrupt, using empty cart",
			zap.String("session_id", s.sessionID),
			zap.Error(err))
		return []models.CartLine{}
	}
	return sanitize(stored)
}

// sanitize drops records that violate line invariants, merges duplicates
// and caps quantities at MaxQuantity
func sanitize(stored []models.CartLine) []models.CartLine {
	lines := make([]models.CartLine, 0, len(stored))
	index := make(map[string]int, len(stored))
	for _, l := range stored {
		if l.ProductID == "" || l.Quantity < 1 {
			continue
		}
		if l.Quantity > MaxQuantity {
			l.Quantity = MaxQuantity
		}
		if i, ok := index[l.ProductID]; ok {
			lines[i].Quantity = min(lines[i].Quantity+l.Quantity, MaxQuantity)
			continue
		}
		index[l.ProductID] = len(lines)
		lines = append(lines, l)
	}
	return lines
}

func removeLine(productID string) func([]models.CartLine) ([]models.CartLine, error) {
	return func(lines []models.CartLine) ([]models.CartLine, error) {
		out := lines[:0]
		for _, l := range lines {
			if l.ProductID != productID {
				out = append(out, l)
			}
		}
		return out, nil
	}
}

func snapshot(c Change) Change {
	c.Lines = append([]models.CartLine{}, c.Lines...)
	return c
}
