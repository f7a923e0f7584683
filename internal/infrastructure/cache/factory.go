package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/shared"
	"github.com/omnicrm/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates the message dedupe store for the given
// configuration. An empty Redis host selects the in-memory store; a
// configured but unreachable Redis falls back to in-memory with a
// warning, since dedupe is best effort and every downstream mutation is
// idempotent per identity.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if cfg.Host == "" {
		logger.Info("redis not configured, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory idempotency store; "+
			"duplicate webhook deliveries may be reprocessed across instances",
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(), nil
	}

	logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
	return store, nil
}

// NewRequiredIdempotencyStore is the strict variant: Redis must be
// reachable. Used when a deployment cannot tolerate per-instance dedupe.
func NewRequiredIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("redis host is required for the shared idempotency store")
	}
	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis idempotency store: %w", err)
	}
	logger.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
	return store, nil
}
