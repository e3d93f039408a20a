//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package db keeps raw tagger responses so that a sentence already seen need not be tagged twice.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/e-gun/AyracGoServer/internal/str"
)

const (
	NOCACHE       = "none"
	SQLITECGO     = "sqlite3"
	SQLITEPUREGO  = "sqlite"
	POSTGRESCACHE = "postgres"
)

var (
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// TagCache - raw tagger bodies keyed by CacheKey()
type TagCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, sentence string, body []byte) error
	Purge(ctx context.Context) (int64, error)
	Close() error
}

// NoCache - every lookup misses
type NoCache struct{}

func (NoCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoCache) Put(context.Context, string, string, []byte) error { return nil }
func (NoCache) Purge(context.Context) (int64, error) { return 0, nil }
func (NoCache) Close() error { return nil }

// OpenCache - build the cache the configuration asks for
func OpenCache(ctx context.Context, cfg str.CurrentConfiguration) (TagCache, error) {
	ttl := time.Duration(cfg.CacheTTLSec) * time.Second

	switch cfg.CacheBackend {
	case NOCACHE, "":
		return NoCache{}, nil
	case SQLITECGO, SQLITEPUREGO:
		return OpenSQLiteCache(ctx, cfg.CacheBackend, cfg.CacheDSN, ttl)
	case POSTGRESCACHE:
		pool, err := FillDBConnectionPool(ctx, cfg.PGLogin)
		if err != nil {
			return nil, err
		}
		return NewPGCache(ctx, pool, ttl)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.CacheBackend)
	}
}

// expired - ttl of zero keeps entries forever
func expired(stored int64, ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(time.Unix(stored, 0)) > ttl
}
