//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/e-gun/AyracGoServer/internal/analysis"
	"github.com/e-gun/AyracGoServer/internal/db"
	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/tagger"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/e-gun/AyracGoServer/web"
	"github.com/pkg/profile"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

func main() {
	const (
		CACHEFAIL = "cache backend '%s' unavailable; tagging results will not be cached: %s"
		JANITOR   = "cache janitor removed %d expired entries"
		WATCHFAIL = "not watching '%s': %s"
	)

	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	start := time.Now()
	previous := time.Now()

	lnch.ConfigAtLaunch()
	lnch.UpdateMessageMakerWithConfig(lnch.Msg)
	cfg := *lnch.Config
	msg := lnch.Msg

	// go tool pprof --pdf ./AyracGoServer /tmp/profile000000000/cpu.pprof > profile.pdf
	if cfg.ProfileCPU {
		defer profile.Start().Stop()
	} else if cfg.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	if !cfg.QuietStart {
		msg.MAND(lnch.VersionLine(cfg))
		fmt.Println(msg.Styled(fmt.Sprintf(vv.TERMINALTEXT, vv.PROJYEAR, vv.PROJAUTH, vv.PROJURL)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := db.OpenCache(ctx, cfg)
	if err != nil {
		msg.CRIT(fmt.Sprintf(CACHEFAIL, cfg.CacheBackend, err))
		cache = db.NoCache{}
	}
	defer cache.Close()
	msg.Timer("A1", fmt.Sprintf("tag cache opened: %s", cfg.CacheBackend), start, previous)

	if cfg.CacheTTLSec > 0 {
		previous = time.Now()
		go janitor(ctx, cache, time.Duration(cfg.CacheTTLSec)*time.Second, func(n int64) {
			if n > 0 {
				msg.FYI(fmt.Sprintf(JANITOR, n))
			}
		})
		msg.Timer("A2", "cache janitor launched", start, previous)
	}

	if cfg.ConfigFile != "" {
		previous = time.Now()
		if werr := lnch.WatchConfigFile(ctx, cfg.ConfigFile, os.Args[1:], lnch.ApplyHotReload); werr != nil {
			msg.WARN(fmt.Sprintf(WATCHFAIL, cfg.ConfigFile, werr))
		} else {
			msg.Timer("A3", fmt.Sprintf("watching '%s'", cfg.ConfigFile), start, previous)
		}
	}

	previous = time.Now()
	tc := tagger.NewClient(cfg.TaggerURL, time.Duration(cfg.TaggerTimeout)*time.Second)
	an := analysis.NewAnalyzer(tc, cache, msg)
	msg.Timer("A4", fmt.Sprintf("tagger client ready: %s", cfg.TaggerURL), start, previous)

	msg.EC(web.StartEchoServer(ctx, an))
}

// janitor - purge expired cache rows once per ttl until ctx ends
func janitor(ctx context.Context, c db.TagCache, ttl time.Duration, report func(int64)) {
	const (
		FAIL = "janitor() purge failed: %s"
	)
	t := time.NewTicker(ttl)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := c.Purge(ctx)
			if err != nil {
				lnch.Msg.WARN(fmt.Sprintf(FAIL, err))
				continue
			}
			report(n)
		}
	}
}
