//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ayracDB=# \d tagcache
//                 Table "public.tagcache"
//  Column   |  Type  | Collation | Nullable | Default
//-----------+--------+-----------+----------+---------
// ckey      | text   |           | not null |
// sentence  | text   |           | not null |
// body      | bytea  |           | not null |
// stored    | bigint |           | not null |
//Indexes:
//    "tagcache_pkey" PRIMARY KEY, btree (ckey)

type PGCache struct {
	pool *pgxpool.Pool
	ttl  time.Duration
	now  func() time.Time
}

// NewPGCache - make sure the table exists and wrap the pool
func NewPGCache(ctx context.Context, pool *pgxpool.Pool, ttl time.Duration) (*PGCache, error) {
	const (
		MKTABLE = `CREATE TABLE IF NOT EXISTS %s (
			ckey     text PRIMARY KEY,
			sentence text NOT NULL,
			body     bytea NOT NULL,
			stored   bigint NOT NULL)`
	)
	if _, err := pool.Exec(ctx, fmt.Sprintf(MKTABLE, vv.CACHETABLE)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create postgres cache table: %w", err)
	}
	return &PGCache{pool: pool, ttl: ttl, now: time.Now}, nil
}

func (c *PGCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const (
		Q = `SELECT body, stored FROM %s WHERE ckey = $1`
	)

	var body []byte
	var stored int64
	err := c.pool.QueryRow(ctx, fmt.Sprintf(Q, vv.CACHETABLE), key).Scan(&body, &stored)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (c *PGCache) Put(ctx context.Context, key string, sentence string, body []byte) error {
	const (
		Q = `INSERT INTO %s (ckey, sentence, body, stored) VALUES ($1, $2, $3, $4)
			ON CONFLICT (ckey) DO UPDATE SET body = excluded.body, stored = excluded.stored`
	)
	_, err := c.pool.Exec(ctx, fmt.Sprintf(Q, vv.CACHETABLE), key, sentence, body, c.now().Unix())
	return err
}

func (c *PGCache) Purge(ctx context.Context) (int64, error) {
	const (
		Q = `DELETE FROM %s WHERE stored < $1`
	)
	if c.ttl <= 0 {
		return 0, nil
	}
	tag, err := c.pool.Exec(ctx, fmt.Sprintf(Q, vv.CACHETABLE), c.now().Add(-c.ttl).Unix())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *PGCache) Close() error {
	c.pool.Close()
	return nil
}
