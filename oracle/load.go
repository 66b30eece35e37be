package oracle

import (
	"context"
	"fmt"

	"github.com/domino14/cryptic/cache"
	"github.com/domino14/cryptic/config"
)

func cacheKey(backend, path string) string {
	if backend == config.BackendSQLite {
		return "thesaurus-db:" + path
	}
	return "thesaurus:" + path
}

// Evict forgets the thesaurus loaded for the current settings, so the next
// Load reads it from disk again.
func Evict(cfg *config.Config) {
	cache.Evict(cacheKey(cfg.GetString(config.ConfigOracleBackend),
		cfg.GetString(config.ConfigThesaurusPath)))
}

// Load returns the oracle selected by the oracle-backend setting. Local
// thesauri are loaded once per process.
func Load(ctx context.Context, cfg *config.Config) (Oracle, error) {
	backend := cfg.GetString(config.ConfigOracleBackend)
	path := cfg.GetString(config.ConfigThesaurusPath)

	switch backend {
	case config.BackendThesaurus:
		obj, err := cache.Load(cfg, cacheKey(backend, path), func(cfg *config.Config, key string) (any, error) {
			return LoadThesaurusFile(path)
		})
		if err != nil {
			return nil, err
		}
		return obj.(*Thesaurus), nil
	case config.BackendSQLite:
		obj, err := cache.Load(cfg, cacheKey(backend, path), func(cfg *config.Config, key string) (any, error) {
			return LoadThesaurusDB(ctx, path)
		})
		if err != nil {
			return nil, err
		}
		return obj.(*Thesaurus), nil
	case config.BackendRemote:
		return NewRemote(cfg.GetString(config.ConfigOracleURL),
			cfg.GetDuration(config.ConfigOracleTimeout),
			cfg.GetInt(config.ConfigOracleAttempts)), nil
	}
	return nil, fmt.Errorf("unknown oracle backend %q", backend)
}
