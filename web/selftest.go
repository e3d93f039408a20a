//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/mm"
)

// time tests and sanity tests against the running server; no tagger needed

type SelfTest struct {
	id   string
	m    string
	path string
	body string
	want func(b []byte) error
}

var ErrSelfTest = errors.New("self-test mismatch")

// spacing - the trailingspace flags of a /format reply must be exactly these
func spacing(flags ...bool) func(b []byte) error {
	return func(b []byte) error {
		var tr TagReply
		if err := json.Unmarshal(b, &tr); err != nil {
			return err
		}
		got := make([]bool, len(tr.Directives))
		for i, d := range tr.Directives {
			got[i] = d.TrailingSpace
		}
		if len(flags) == 0 && len(got) == 0 {
			return nil
		}
		if !reflect.DeepEqual(got, flags) {
			return fmt.Errorf("%w: trailing spaces %v; wanted %v", ErrSelfTest, got, flags)
		}
		return nil
	}
}

func placement(x float64, y float64) func(b []byte) error {
	return func(b []byte) error {
		var p TooltipPlacement
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		if p.X != x || p.Y != y {
			return fmt.Errorf("%w: (%v, %v); wanted (%v, %v)", ErrSelfTest, p.X, p.Y, x, y)
		}
		return nil
	}
}

// SelfTests - the scenarios replayed by "-st"
func SelfTests() []SelfTest {
	const (
		FMT = "/format"
		TIP = "/tooltip/place?px=990&py=10&tw=100&th=30&vw=1000&vh=800&sx=0&sy=0&off=15"
	)
	return []SelfTest{
		{id: "A", m: "scenario A: no tokens", path: FMT, body: `{"tokens": []}`, want: spacing()},
		{id: "B", m: "scenario B: one word", path: FMT, body: `{"tokens": [{"ev": "Noun"}]}`, want: spacing(false)},
		{id: "C", m: "scenario C: word and period", path: FMT,
			body: `{"tokens": [{"ev": "Noun"}, {".": "Punctuation"}]}`, want: spacing(false, false)},
		{id: "D", m: "scenario D: ambiguous quotes", path: FMT,
			body: `{"tokens": [{"\"": "Punctuation"}, {"merhaba": "Noun"}, {"\"": "Punctuation"}]}`,
			want: spacing(false, false, false)},
		{id: "E", m: "tooltip flips left at the right edge", path: TIP, want: placement(875, 25)},
	}
}

// RunSelfTests - loop selftestsuite()
func RunSelfTests(ctx context.Context) {
	if lnch.Config == nil || lnch.Config.SelfTest == 0 {
		return
	}
	base := fmt.Sprintf("http://%s:%d", lnch.Config.HostIP, lnch.Config.HostPort)

	// give e.Start() a moment
	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return
	}

	for i := 0; i < lnch.Config.SelfTest; i++ {
		msg.MAND(fmt.Sprintf("Running Selftest %d of %d", i+1, lnch.Config.SelfTest))
		if fails := selftestsuite(ctx, base, msg); fails > 0 {
			msg.CRIT(fmt.Sprintf("Selftest %d: %d failure(s)", i+1, fails))
		}
	}
}

// selftestsuite - iterate through the list of tests; return the number of failures
func selftestsuite(ctx context.Context, base string, m *mm.MessageMaker) int {
	const (
		FAIL = "[%s] %s: %s"
	)

	start := time.Now()
	previous := time.Now()
	fails := 0
	hc := &http.Client{Timeout: 10 * time.Second}

	for _, t := range SelfTests() {
		var req *http.Request
		var err error
		if t.body != "" {
			req, err = http.NewRequestWithContext(ctx, http.MethodPost, base+t.path, bytes.NewBufferString(t.body))
			if err == nil {
				req.Header.Set("Content-Type", "application/json")
			}
		} else {
			req, err = http.NewRequestWithContext(ctx, http.MethodGet, base+t.path, nil)
		}

		if err == nil {
			var resp *http.Response
			if resp, err = hc.Do(req); err == nil {
				var b []byte
				b, err = io.ReadAll(resp.Body)
				_ = resp.Body.Close()
				if err == nil {
					err = t.want(b)
				}
			}
		}

		if err != nil {
			fails++
			m.CRIT(fmt.Sprintf(FAIL, t.id, t.m, err))
		}
		m.Timer(t.id, t.m, start, previous)
		previous = time.Now()
	}
	return fails
}
