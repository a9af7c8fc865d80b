package cli

import (
	"fmt"

	"weightlog/internal/adapter/file"
	"weightlog/internal/adapter/memory"
	"weightlog/internal/adapter/postgres"
	redisstore "weightlog/internal/adapter/redis"
	"weightlog/internal/app"
	"weightlog/internal/config"
	"weightlog/internal/domain"
)

// session holds the services a command runs against and the store cleanup.
type session struct {
	cfg     config.Config
	entries *app.EntryLogService
	charts  *app.ChartsService
	close   func() error
}

// openSession loads config and opens the configured store.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	es := app.NewEntryLogService(store, app.WithKey(cfg.Store.Key))
	return &session{
		cfg:     cfg,
		entries: es,
		charts:  app.NewChartsService(es),
		close:   closer,
	}, nil
}

func (s *session) Close() {
	if s.close != nil {
		_ = s.close()
	}
}

func noClose() error { return nil }

// openStore returns the store for cfg.Store.Driver and a function releasing it.
func openStore(cfg config.Config) (domain.Store, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.New(), noClose, nil
	case config.DriverFile:
		s, err := file.Open(cfg.Store.DataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open data file: %w", err)
		}
		return s, noClose, nil
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		return db, db.Close, nil
	case config.DriverRedis:
		s, err := redisstore.Open(redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis open: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// withSession opens a session for the duration of fn.
func withSession(fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
