//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FillDBConnectionPool - build the pgxpool that the postgres cache will Acquire() from
func FillDBConnectionPool(ctx context.Context, pl str.PostgresLogin) (*pgxpool.Pool, error) {
	// the cache does one short query per sentence; a handful of connections covers many typists

	const (
		UTPL    = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		FAIL1   = "configuration error: could not execute ParseConfig(url) via '%s': %w"
		FAIL2   = "could not connect to PostgreSQL: %w"
		ERRRUN  = `dial error`
		FAILRUN = `the PostgreSQL server cannot be found; check that it is running and serving on port %d: %w`
	)

	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, vv.POOLMINCONNS, vv.POOLMAXCONNS)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		// do not echo the password back into the logs
		return nil, fmt.Errorf(FAIL1, strings.Replace(url, ":"+pl.Pass+"@", ":********@", 1), e)
	}

	thepool, e := pgxpool.NewWithConfig(ctx, config)
	if e != nil {
		return nil, fmt.Errorf(FAIL2, e)
	}

	// NewWithConfig() is lazy; find out now rather than on the first sentence
	if e = thepool.Ping(ctx); e != nil {
		thepool.Close()
		if strings.Contains(e.Error(), ERRRUN) {
			return nil, fmt.Errorf(FAILRUN, pl.Port, e)
		}
		return nil, fmt.Errorf(FAIL2, e)
	}
	return thepool, nil
}
