package main

import (
	"context"
	"fmt"

	"github.com/aretw0/ucanfire/internal/config"
	"github.com/aretw0/ucanfire/pkg/adapters/file"
	"github.com/aretw0/ucanfire/pkg/adapters/memory"
	"github.com/aretw0/ucanfire/pkg/adapters/redis"
	"github.com/aretw0/ucanfire/pkg/domain"
	"github.com/aretw0/ucanfire/pkg/observability"
	"github.com/aretw0/ucanfire/pkg/ports"
	"github.com/aretw0/ucanfire/pkg/questionnaire"
	"github.com/aretw0/ucanfire/pkg/session"
)

// app bundles what every command needs to drive sessions.
type app struct {
	store   ports.StateStore
	locker  ports.DistributedLocker
	closeFn func() error
}

// openStore builds the session store selected by cfg.Store.
func openStore(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{closeFn: func() error { return nil }}

	switch cfg.Store {
	case config.StoreMemory:
		a.store = memory.NewStore()
	case config.StoreFile:
		a.store = file.New(cfg.DataDir)
	case config.StoreRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis store unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		a.store = rs
		a.locker = redis.NewLocker(rs.Client(), cfg.Redis.Prefix)
		a.closeFn = rs.Close
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	logger.Debug("session store ready", "store", cfg.Store)
	return a, nil
}

// manager builds a session manager over the store with logging hooks,
// plus any extra hooks and listeners the command wants.
func (a *app) manager(hooks domain.LifecycleHooks, listeners ...session.Listener) *session.Manager {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithEngineOptions(
			questionnaire.WithLogger(logger),
			questionnaire.WithHooks(observability.LogHooks(logger).Merge(hooks)),
		),
	}
	if a.locker != nil {
		opts = append(opts, session.WithLocker(a.locker))
	}
	for _, l := range listeners {
		opts = append(opts, session.WithListener(l))
	}
	return session.NewManager(a.store, opts...)
}

func (a *app) Close() error {
	return a.closeFn()
}
