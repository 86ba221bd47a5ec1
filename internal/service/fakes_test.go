package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/i18n"
	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/stretchr/testify/require"
)

type fakeInitiator struct {
	calls    int
	requests []checkout.Request
	err      error
	next     int
}

func (f *fakeInitiator) Name() string { return "fake" }

func (f *fakeInitiator) Initialize(_ context.Context, req checkout.Request) (checkout.Session, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return checkout.Session{}, f.err
	}
	f.next++
	ref := "ref_" + string(rune('0'+f.next))
	return checkout.Session{CheckoutURL: "https://pay.example/" + ref, Reference: ref}, nil
}

type fakeSessions struct {
	mu        sync.Mutex
	sessions  map[string]*models.CheckoutSession
	processed map[string]bool
	createErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*models.CheckoutSession{}, processed: map[string]bool{}}
}

func (f *fakeSessions) CreateSession(_ context.Context, s *models.CheckoutSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *s
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.sessions[s.Reference] = &cp
	return nil
}

func (f *fakeSessions) GetSession(_ context.Context, ref string) (*models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[ref]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) GetSessionsBySessionID(_ context.Context, sessionID string, limit int) ([]models.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CheckoutSession{}
	for _, s := range f.sessions {
		if s.SessionID == sessionID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference > out[j].Reference })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessions) UpdateSessionStatus(_ context.Context, ref, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[ref]
	if !ok || s.Status != models.CheckoutStatusPending {
		return false, nil
	}
	s.Status = status
	return true, nil
}

func (f *fakeSessions) IsEventProcessed(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processed[id], nil
}

func (f *fakeSessions) MarkEventProcessed(_ context.Context, id, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processed[id] {
		return false, nil
	}
	f.processed[id] = true
	return true, nil
}

type fakeCoordinator struct {
	mu      sync.Mutex
	locks   map[string]bool
	keys    map[string]bool
	lockErr error
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{locks: map[string]bool{}, keys: map[string]bool{}}
}

func (f *fakeCoordinator) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lockErr != nil {
		return false, f.lockErr
	}
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

func (f *fakeCoordinator) ReleaseLock(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, key)
	return nil
}

func (f *fakeCoordinator) SetIdempotencyKey(_ context.Context, key string, _ interface{}, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	created   []*models.CheckoutCreatedEvent
	signals   []*models.CheckoutSignalEvent
	completed []*models.CheckoutCompletedEvent
	cancelled []*models.CheckoutCancelledEvent
	err       error
}

func (f *fakeEvents) PublishCheckoutCreated(_ context.Context, e *models.CheckoutCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, e)
	return f.err
}

func (f *fakeEvents) PublishCheckoutSignal(_ context.Context, e *models.CheckoutSignalEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.signals = append(f.signals, e)
	return nil
}

func (f *fakeEvents) PublishCheckoutCompleted(_ context.Context, e *models.CheckoutCompletedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, e)
	return f.err
}

func (f *fakeEvents) PublishCheckoutCancelled(_ context.Context, e *models.CheckoutCancelledEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, e)
	return f.err
}

// flakyStorage is an in-memory cart storage whose writes can be made to fail
type flakyStorage struct {
	*cart.MemoryStorage
	mu      sync.Mutex
	saveErr error
}

func (f *flakyStorage) failSaves(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErr = err
}

func (f *flakyStorage) Save(ctx context.Context, key string, data []byte) error {
	f.mu.Lock()
	err := f.saveErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemoryStorage.Save(ctx, key, data)
}

type harness struct {
	svc       *CheckoutService
	storage   *flakyStorage
	carts     *cart.Manager
	catalog   *catalog.Catalog
	initiator *fakeInitiator
	sessions  *fakeSessions
	coord     *fakeCoordinator
	events    *fakeEvents
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	tr, err := i18n.Load("fr")
	require.NoError(t, err)
	xof, err := catalog.LookupCurrency("XOF")
	require.NoError(t, err)
	cat, err := catalog.NewDefault(xof, catalog.WithResolver(tr))
	require.NoError(t, err)

	storage := &flakyStorage{MemoryStorage: cart.NewMemoryStorage()}
	h := &harness{
		storage:   storage,
		carts:     cart.NewManager(storage, cart.DefaultKeyPrefix),
		catalog:   cat,
		initiator: &fakeInitiator{},
		sessions:  newFakeSessions(),
		coord:     newFakeCoordinator(),
		events:    &fakeEvents{},
	}
	h.svc = NewCheckoutService(h.carts, h.catalog, h.initiator, h.sessions, h.coord, h.events, tr, Settings{
		StoreName:       "Malika",
		BaseURL:         "http://localhost:3000",
		MinAmount:       100,
		DonationPresets: []int64{1000, 2500, 5000, 10000},
	})
	return h
}

func (h *harness) fill(t *testing.T, session string, productIDs ...string) {
	t.Helper()
	for _, id := range productIDs {
		require.NoError(t, h.carts.Session(session).AddToCart(context.Background(), id))
	}
}

var errBoom = errors.New("boom")
