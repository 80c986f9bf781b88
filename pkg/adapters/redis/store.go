package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/rehearse/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store and the locker.
const DefaultPrefix = "rehearse:"

// Store implements ports.CursorStore using Redis.
// The cursor lives under <prefix>cursor:<name>.
type Store struct {
	client *backend.Client
	prefix string
	name   string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of the cursor key.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, name string, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, name, opts...)
}

// NewFromURL creates a store from a redis:// URL.
func NewFromURL(url, name string, opts ...Option) (*Store, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(o), name, opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, name string, opts ...Option) *Store {
	if name == "" {
		name = "default"
	}
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		name:   name,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the redis key holding the cursor.
func (s *Store) Key() string {
	return s.prefix + "cursor:" + s.name
}

// Name returns the cursor name, also used as the lock key.
func (s *Store) Name() string {
	return s.name
}

// Client exposes the underlying client so a Locker can share the connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Save persists the cursor to Redis.
func (s *Store) Save(ctx context.Context, cursor int) error {
	if err := s.client.Set(ctx, s.Key(), strconv.Itoa(cursor), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the cursor from Redis.
func (s *Store) Load(ctx context.Context) (int, error) {
	val, err := s.client.Get(ctx, s.Key()).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, domain.ErrCursorNotFound
		}
		return 0, fmt.Errorf("failed to get from redis: %w", err)
	}

	cursor, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor at %s: %w", s.Key(), err)
	}
	if cursor < 0 {
		return 0, fmt.Errorf("invalid cursor at %s: negative value %d", s.Key(), cursor)
	}
	return cursor, nil
}

// Delete removes the cursor key.
func (s *Store) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.Key()).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
