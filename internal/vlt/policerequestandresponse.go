//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

//
// RESPONSEPOLICING
//

// a server listening beyond localhost gets scanned; repeat 404/405 offenders are blocked

type EchoResponseStats struct {
	TwoHundred  uint64 `json:"200"`
	FourHundred uint64 `json:"400"`
	FourOhThree uint64 `json:"403"`
	FourOhFour  uint64 `json:"404"`
	FourOhFive  uint64 `json:"405"`
	FiveHundred uint64 `json:"500"`
	FiveOhThree uint64 `json:"503"`
}

type blackListRD struct {
	ip   string
	resp chan bool
}

type blackListWR struct {
	ip   string
	resp chan bool
}

type statListWR struct {
	code int
	ip   string
	uri  string
}

// Police - one goroutine owns the strike counts, the blacklist and the stats; everyone else uses channels
type Police struct {
	FailsAllowed int
	SlowDown     time.Duration
	bListWR      chan blackListWR
	bListRD      chan blackListRD
	sListWR      chan statListWR
	statsRD      chan chan EchoResponseStats
	done         chan struct{}
	once         sync.Once
}

func NewPolice() *Police {
	return &Police{
		FailsAllowed: 3,
		SlowDown:     3 * time.Second,
		bListWR:      make(chan blackListWR),
		bListRD:      make(chan blackListRD),
		sListWR:      make(chan statListWR),
		statsRD:      make(chan chan EchoResponseStats),
		done:         make(chan struct{}),
	}
}

// Middleware - track Response code counts + block repeat offenders; this is custom middleware for an *echo.Echo
func (p *Police) Middleware(nextechohandler echo.HandlerFunc) echo.HandlerFunc {
	const (
		BLACK0 = `IP address %s was blacklisted: too many previous Response code errors`
		BLACK1 = `IP address %s received a strike: invalid request prefix in URI "%s"`
	)

	return func(c echo.Context) error {
		// presumed guilty: 403
		registerresult := statListWR{
			code: http.StatusForbidden,
			ip:   c.RealIP(),
			uri:  c.Request().RequestURI,
		}

		// already known to be bad?
		ok := p.allowed(c.RealIP())

		// is something like 'http://journalseek.net/' in the request?
		rq := c.Request().RequestURI
		if strings.HasPrefix(rq, "http:") || strings.HasPrefix(rq, "https:") {
			ok = false
			if p.strike(c.RealIP()) {
				Msg.WARN(fmt.Sprintf(BLACK1, c.RealIP(), rq))
			}
		}

		if !ok {
			p.register(registerresult)
			time.Sleep(p.SlowDown)
			return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf(BLACK0, c.RealIP()))
		}

		// do this before setting c.Response().Status or you will always get "200"
		if err := nextechohandler(c); err != nil {
			c.Error(err)
		}
		registerresult.code = c.Response().Status
		p.register(registerresult)
		return nil
	}
}

// once the keeper has stopped every address is allowed and nothing is counted; requests still in flight
// during a shutdown must not wait on a keeper that is gone

// allowed - false if the address is on the blacklist
func (p *Police) allowed(ip string) bool {
	rd := blackListRD{ip: ip, resp: make(chan bool, 1)}
	select {
	case p.bListRD <- rd:
		return <-rd.resp
	case <-p.done:
		return true
	}
}

// strike - true if this strike put the address on the blacklist
func (p *Police) strike(ip string) bool {
	wr := blackListWR{ip: ip, resp: make(chan bool, 1)}
	select {
	case p.bListWR <- wr:
		return <-wr.resp
	case <-p.done:
		return false
	}
}

func (p *Police) register(r statListWR) {
	select {
	case p.sListWR <- r:
	case <-p.done:
	}
}

// Stats - a copy of the current counts; zero once the keeper has stopped
func (p *Police) Stats() EchoResponseStats {
	r := make(chan EchoResponseStats, 1)
	select {
	case p.statsRD <- r:
		return <-r
	case <-p.done:
		return EchoResponseStats{}
	}
}

// Stopped - closed when the keeper returns
func (p *Police) Stopped() <-chan struct{} {
	return p.done
}

// Start - run the keeper until ctx ends; later calls do nothing
func (p *Police) Start(ctx context.Context) {
	p.once.Do(func() { go p.keeper(ctx) })
}

func (p *Police) keeper(ctx context.Context) {
	const (
		BLACK0 = `IP address %s was blacklisted: too many previous Response code errors; %d address(es) on the blacklist`
		BLACK1 = `IP address %s received a strike: StatusNotFound error for URI "%s"`
		BLACK3 = `IP address %s received a strike: MethodNotAllowed for URI "%s"`
		FYI200 = `StatusOK count is %d`
		FRQ200 = 1000
		FYI403 = `[%s] StatusForbidden count is %d. Last blocked was %s requesting "%s"`
		FRQ403 = 100
		FYI404 = `StatusNotFound count is %d`
		FRQ404 = 100
		FYI405 = `MethodNotAllowed count is %d`
		FRQ405 = 5
		FYI500 = `StatusInternalServerError count is %d`
		FRQ500 = 1
		FYI503 = `tagger unavailable count is %d`
		FRQ503 = 10
	)

	var st EchoResponseStats
	strikecount := make(map[string]int)
	blacklist := make(map[string]struct{})

	warn := func(v uint64, frq uint64, fyi string) {
		if v%frq == 0 {
			Msg.NOTE(fmt.Sprintf(fyi, v))
		}
	}

	addstrike := func(ip string) bool {
		strikecount[ip]++
		if strikecount[ip] > p.FailsAllowed {
			if _, already := blacklist[ip]; !already {
				blacklist[ip] = struct{}{}
				Msg.NOTE(fmt.Sprintf(BLACK0, ip, len(blacklist)))
			}
			return true
		}
		return false
	}

	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			return
		case rd := <-p.bListRD:
			_, bad := blacklist[rd.ip]
			rd.resp <- !bad
		case wr := <-p.bListWR:
			wr.resp <- addstrike(wr.ip)
		case r := <-p.statsRD:
			r <- st
		case status := <-p.sListWR:
			switch status.code {
			case http.StatusOK:
				st.TwoHundred++
				warn(st.TwoHundred, FRQ200, FYI200)
			case http.StatusBadRequest:
				st.FourHundred++
			case http.StatusForbidden:
				st.FourOhThree++
				if st.FourOhThree%FRQ403 == 0 {
					Msg.NOTE(fmt.Sprintf(FYI403, time.Now().Format(time.RFC822), st.FourOhThree, status.ip, status.uri))
				}
			case http.StatusNotFound:
				st.FourOhFour++
				warn(st.FourOhFour, FRQ404, FYI404)
				if addstrike(status.ip) {
					Msg.WARN(fmt.Sprintf(BLACK1, status.ip, status.uri))
				}
			case http.StatusMethodNotAllowed:
				// these seem to come only from hostile scanners
				st.FourOhFive++
				warn(st.FourOhFive, FRQ405, FYI405)
				if addstrike(status.ip) {
					Msg.WARN(fmt.Sprintf(BLACK3, status.ip, status.uri))
				}
			case http.StatusInternalServerError:
				st.FiveHundred++
				warn(st.FiveHundred, FRQ500, FYI500)
			case http.StatusServiceUnavailable:
				// the tagger, not the client, is at fault: no strike
				st.FiveOhThree++
				warn(st.FiveOhThree, FRQ503, FYI503)
			default:
				// do nothing: not interested
				// 302 from "/reset/session"
				// 101 from "/ws"
			}
		}
	}
}
