package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/rehearse/pkg/adapters/file"
	"github.com/aretw0/rehearse/pkg/adapters/redis"
	"github.com/aretw0/rehearse/pkg/config"
	"github.com/aretw0/rehearse/pkg/ports"
)

// lockWait bounds how long a run waits for another run to release the cursor.
var lockWait = 2 * time.Second

// cursorBackend is a CursorStore that can also be wiped and released.
type cursorBackend interface {
	ports.CursorStore
	Delete(ctx context.Context) error
}

// persistence bundles the cursor store with its cleanup.
type persistence struct {
	store   cursorBackend
	release func()
}

// setupPersistence picks the cursor backend. With redis, the cursor is also
// locked so two runs never drive the same deck at once.
func setupPersistence(ctx context.Context, cfg config.CursorConfig, lock bool, logger *slog.Logger) (*persistence, error) {
	if cfg.RedisURL == "" {
		logger.Debug("using file cursor", "path", cfg.Path)
		return &persistence{store: file.New(cfg.Path), release: func() {}}, nil
	}

	var opts []redis.Option
	if cfg.TTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.TTL))
	}
	store, err := redis.NewFromURL(cfg.RedisURL, cfg.Name, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("using redis cursor", "key", store.Key())

	p := &persistence{store: store, release: func() { store.Close() }}
	if !lock {
		return p, nil
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()

	var locker ports.Locker = redis.NewLocker(store.Client(), redis.DefaultPrefix)
	unlock, err := locker.Lock(lockCtx, store.Name(), cfg.LockTTL)
	if err != nil {
		store.Close()
		return nil, err
	}

	p.release = func() {
		if err := unlock(context.Background()); err != nil {
			logger.Warn("failed to release cursor lock", "error", err)
		}
		store.Close()
	}
	return p, nil
}

// ResetCursor forgets the saved position so the next run starts at the top.
func ResetCursor(ctx context.Context, cfg config.CursorConfig, logger *slog.Logger) error {
	p, err := setupPersistence(ctx, cfg, false, logger)
	if err != nil {
		return err
	}
	defer p.release()
	return p.store.Delete(ctx)
}
