//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/e-gun/AyracGoServer/internal/analysis"
	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
)

var (
	msg      = lnch.Msg
	Analyzer *analysis.Analyzer
	Police   = vlt.NewPolice()
	launched = time.Now()
)

// NewEchoServer - an *echo.Echo with the middleware and routes in place but not yet listening
func NewEchoServer(an *analysis.Analyzer, cfg str.CurrentConfiguration) *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	Analyzer = an

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		if len(ua) == 0 {
			return 0, nil
		}
		return buf.Write([]byte(ua[len(ua)-1]))
	}

	//
	// SETUP
	//

	e := echo.New()

	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR

	// see "policerequestandresponse.go"
	e.Use(Police.Middleware)

	switch cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/ws" },
		Store:   middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECOND),
	}))

	e.Use(middleware.Recover())

	// browser front ends served from elsewhere need CORS to reach "/tag", etc.
	e.Use(echo.WrapMiddleware(cors.New(corsoptions(cfg.CORSOrigins)).Handler))

	if cfg.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level:   5,
			Skipper: func(c echo.Context) bool { return c.Path() == "/ws" },
		}))
	}

	e.Use(middleware.BodyLimit(vv.MAXBODYSIZE))

	//
	// AYRAC ROUTES
	//

	// [a] frontpage ("rt-frontpage.go")

	e.GET("/", RtFrontpage)
	e.GET("/emb/js/ayrac.js", RtEmbJS)
	e.GET("/get/json/serverstats", RtServerStats)

	// [b] tagging and layout ("rt-tag.go")

	e.POST("/tag", RtTag)            // {"sentence": "evde kaldım.", "seq": 7}
	e.POST("/format", RtFormat)      // {"tokens": [{"ev": "Noun", "de": "Loc"}, ...]}
	e.POST("/tag/chart", RtTagChart) // {"sentence": "evde kaldım."}

	// [c] tooltips ("rt-tooltip.go")

	e.GET("/tooltip/place", RtTooltipPlace) // "/tooltip/place?px=990&py=10&tw=100&th=30&vw=1000&vh=800&sx=0&sy=0"
	e.GET("/tooltip/text", RtTooltipText)   // "/tooltip/text?root=ev&morpheme=ler&tag=A3pl"

	// [d] options ("rt-setoption.go")

	e.GET("/setoption/:opt/:val", RtSetOption) // "/setoption/offset/20"

	// [e] resets and cookies ("rt-session.go")

	e.GET("/reset/session", RtResetSession)
	e.GET("/sc/set/:num", RtSessionSetsCookie)
	e.GET("/sc/get/:num", RtSessionGetCookie)

	// [f] websocket ("rt-websocket.go")

	e.GET("/ws", RtWebsocket)

	e.HideBanner = true
	e.HidePort = false
	e.Debug = false
	e.DisableHTTP2 = true
	return e
}

// StartEchoServer - start serving; this blocks until ctx ends or the listener fails
func StartEchoServer(ctx context.Context, an *analysis.Analyzer) error {
	const (
		DOWN = "StartEchoServer() shutting down"
	)

	e := NewEchoServer(an, *lnch.Config)

	// the keeper must outlive e.Shutdown(): requests still draining report their status to it
	pctx, pcancel := context.WithCancel(context.Background())
	defer pcancel()
	Police.Start(pctx)

	// next will do nothing if Config is not requesting it
	go RunSelfTests(ctx)

	errs := make(chan error, 1)
	go func() {
		errs <- e.Start(fmt.Sprintf("%s:%d", lnch.Config.HostIP, lnch.Config.HostPort))
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		msg.NOTE(DOWN)
		sctx, cancel := context.WithTimeout(context.Background(), vv.TIMEOUTRD)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// corsoptions - "*" or a comma-separated list of origins
func corsoptions(origins string) cors.Options {
	var oo []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			oo = append(oo, o)
		}
	}
	return cors.Options{
		AllowedOrigins:   oo,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{echo.HeaderContentType},
		AllowCredentials: true,
		MaxAge:           600,
	}
}
