//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/e-gun/AyracGoServer/internal/vv"
	_ "github.com/mattn/go-sqlite3" // "sqlite3": cgo
	_ "modernc.org/sqlite"          // "sqlite": pure go
)

//
// GENERAL NOTES re SQLITE
//

// both drivers are linked in; "-cb sqlite" is there for builds and hosts without a C toolchain

// a ":memory:" database exists once per connection; the pool is held to a single connection so that
// every query sees the same table (and writes are serialized anyway)

type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLiteCache - open (and if need be create) the cache table
func OpenSQLiteCache(ctx context.Context, driver string, dsn string, ttl time.Duration) (*SQLiteCache, error) {
	const (
		MKTABLE = `CREATE TABLE IF NOT EXISTS %s (
			ckey     TEXT PRIMARY KEY,
			sentence TEXT NOT NULL,
			body     BLOB NOT NULL,
			stored   INTEGER NOT NULL)`
	)

	if dsn == "" {
		dsn = vv.CACHEDSN
	}

	sdb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s cache '%s': %w", driver, dsn, err)
	}
	sdb.SetMaxOpenConns(1)

	if _, err = sdb.ExecContext(ctx, fmt.Sprintf(MKTABLE, vv.CACHETABLE)); err != nil {
		_ = sdb.Close()
		return nil, fmt.Errorf("create %s cache table: %w", driver, err)
	}
	return &SQLiteCache{db: sdb, ttl: ttl, now: time.Now}, nil
}

func (c *SQLiteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const (
		Q = `SELECT body, stored FROM %s WHERE ckey = ?`
	)

	var body []byte
	var stored int64
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(Q, vv.CACHETABLE), key).Scan(&body, &stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if expired(stored, c.ttl, c.now()) {
		return nil, false, nil
	}
	return body, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, key string, sentence string, body []byte) error {
	const (
		Q = `INSERT INTO %s (ckey, sentence, body, stored) VALUES (?, ?, ?, ?)
			ON CONFLICT(ckey) DO UPDATE SET body = excluded.body, stored = excluded.stored`
	)
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(Q, vv.CACHETABLE), key, sentence, body, c.now().Unix())
	return err
}

// Purge - drop expired rows; returns how many went
func (c *SQLiteCache) Purge(ctx context.Context) (int64, error) {
	const (
		Q = `DELETE FROM %s WHERE stored < ?`
	)
	if c.ttl <= 0 {
		return 0, nil
	}
	res, err := c.db.ExecContext(ctx, fmt.Sprintf(Q, vv.CACHETABLE), c.now().Add(-c.ttl).Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
