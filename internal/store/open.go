package store

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/habitual/internal/config"
	"github.com/MihkelHunter/habitual/internal/habit"
)

// NewMirror returns the mirror selected by cfg.Backend.
func NewMirror(cfg *config.Config) (habit.Mirror, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		r, err := DialRedis(cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return r, nil
	case config.BackendSQLite, "":
		if err := cfg.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		s, err := NewSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Open builds the configured mirror and loads a habit.Store from it.
func Open(cfg *config.Config, logger log.FieldLogger) (*habit.Store, error) {
	m, err := NewMirror(cfg)
	if err != nil {
		return nil, err
	}
	st, err := habit.Open(m, logger.WithField("backend", cfg.Backend))
	if err != nil {
		m.Close()
		return nil, err
	}
	return st, nil
}
