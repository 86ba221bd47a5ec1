package cart

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/redisclient"
)

// Storage persists serialized carts by key. Load returns nil data and a nil
// error when nothing is stored under key.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// RedisStorage keeps carts as string values in Redis
type RedisStorage struct {
	client *redisclient.Client
}

// NewRedisStorage creates a Storage backed by the given Redis client
func NewRedisStorage(client *redisclient.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.GetBlob(ctx, key)
	if errors.Is(err, redisclient.ErrNotFound) {
		return nil, nil
	}
	return data, err
}

func (s *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	return s.client.SetBlob(ctx, key, data)
}

// MemoryStorage is a process-local Storage used in tests and demos
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (s *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
