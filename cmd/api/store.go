package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mortgage-calculator/internal/config"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/session"
)

// newStore opens the configured session store. The returned func releases
// it.
func newStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := session.NewRedisClient(cfg.RedisAddr)
		store := session.NewRedisStore(client, cfg.TTL)
		if err := store.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, func() {
			if err := client.Close(); err != nil {
				observability.Logger.Warn("closing redis client", zap.Error(err))
			}
		}, nil
	case config.StoreMemory:
		store := session.NewMemoryStore(cfg.TTL)
		stop := make(chan struct{})
		go sweep(store, cfg.TTL, stop)
		return store, func() { close(stop) }, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
}

// sweep evicts expired in-process sessions every interval until stop closes.
func sweep(store *session.MemoryStore, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				observability.Logger.Debug("expired sessions swept", zap.Int("count", n))
			}
		}
	}
}
