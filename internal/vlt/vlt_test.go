//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/e-gun/AyracGoServer/internal/analysis"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/tagger"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionVault(t *testing.T) {
	sv := MakeSessionVault()
	assert.False(t, sv.IsInVault("a"))

	s := sv.GetSess("a")
	assert.Equal(t, "a", s.ID)
	assert.Equal(t, vv.TOOLTIPOFFSET, s.TooltipOffset)
	assert.False(t, sv.IsInVault("a"), "GetSess does not insert")

	s.TooltipOffset = 5
	sv.InsertSess(s)
	assert.True(t, sv.IsInVault("a"))
	assert.Equal(t, 5, sv.GetSess("a").TooltipOffset)
	assert.Equal(t, 1, sv.Count())

	sv.Delete("a")
	assert.False(t, sv.IsInVault("a"))
}

func TestSupersede(t *testing.T) {
	sv := MakeSessionVault()
	assert.True(t, sv.Supersede("a", 1))
	assert.True(t, sv.Supersede("a", 3))
	assert.False(t, sv.Supersede("a", 2), "an older request arriving late is stale")
	assert.False(t, sv.Supersede("a", 3))
	assert.True(t, sv.Supersede("a", 0), "unnumbered requests are never stale")

	assert.True(t, sv.IsLatest("a", 3))
	assert.False(t, sv.IsLatest("a", 1))
	assert.True(t, sv.IsLatest("a", 0))
	assert.Equal(t, 5, sv.GetSess("a").Requests)
}

func TestSupersedeConcurrent(t *testing.T) {
	sv := MakeSessionVault()
	var wg sync.WaitGroup
	for i := int64(1); i <= 100; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			sv.Supersede("a", n)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int64(100), sv.GetSess("a").LatestSeq)
}

func policed(t *testing.T) (*echo.Echo, *Police) {
	p := NewPolice()
	p.SlowDown = 0
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	p.Start(ctx)

	e := echo.New()
	e.Use(p.Middleware)
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	return e, p
}

func TestPoliceCountsAndBlocks(t *testing.T) {
	e, p := policed(t)

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get("/ok"))
	for i := 0; i < p.FailsAllowed; i++ {
		assert.Equal(t, http.StatusNotFound, get("/nope"))
	}
	assert.Equal(t, http.StatusOK, get("/ok"), "still within the allowance")

	assert.Equal(t, http.StatusNotFound, get("/nope"))
	assert.Equal(t, http.StatusForbidden, get("/ok"))

	st := p.Stats()
	assert.EqualValues(t, 2, st.TwoHundred)
	assert.EqualValues(t, 4, st.FourOhFour)
	assert.EqualValues(t, 1, st.FourOhThree)
}

func TestPoliceStoppedKeeperDoesNotBlock(t *testing.T) {
	p := NewPolice()
	p.SlowDown = 0
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	e := echo.New()
	e.Use(p.Middleware)
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	get := func() int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get())
	cancel()

	select {
	case <-p.Stopped():
	case <-time.After(2 * time.Second):
		t.Fatal("keeper did not stop")
	}

	codes := make(chan int, 1)
	go func() { codes <- get() }()
	select {
	case c := <-codes:
		assert.Equal(t, http.StatusOK, c)
	case <-time.After(2 * time.Second):
		t.Fatal("request hung after the keeper stopped")
	}
	assert.Equal(t, EchoResponseStats{}, p.Stats())
}

type slowtagger struct {
	mtx   sync.Mutex
	calls []string
}

func (s *slowtagger) Tag(ctx context.Context, sentence string) (tagger.Response, error) {
	s.mtx.Lock()
	s.calls = append(s.calls, sentence)
	s.mtx.Unlock()
	if strings.HasPrefix(sentence, "slow") {
		<-ctx.Done()
		return tagger.Response{}, ctx.Err()
	}
	body := []byte(`{"tokens": [{"` + sentence + `": "Noun"}]}`)
	tt, err := tagger.Parse(body)
	return tagger.Response{Raw: body, Tokens: tt}, err
}

func liveserver(t *testing.T) *websocket.Conn {
	an := analysis.NewAnalyzer(&slowtagger{}, nil, nil)
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewLiveClient("live-test", ws, an).Run(r.Context())
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestLiveClientSentenceAndHover(t *testing.T) {
	conn := liveserver(t)

	require.NoError(t, conn.WriteJSON(WSIn{Type: WSSENTENCE, Seq: 1, Sentence: "ev"}))
	var out WSOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, WSRENDER, out.Type)
	assert.Equal(t, int64(1), out.Seq)
	assert.Equal(t, analysis.Rendered, out.State)
	require.Len(t, out.Directives, 1)
	assert.Equal(t, []str.MorphemeView{{Text: "ev", Tag: "Noun", Root: "ev"}}, out.Directives[0].Morphemes)

	require.NoError(t, conn.WriteJSON(WSIn{Type: WSHOVER, Seq: 2, PX: 990, PY: 10, TW: 100, TH: 30, VW: 1000, VH: 800}))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, WSPLACE, out.Type)
	assert.Equal(t, 875.0, out.X)
	assert.Equal(t, 25.0, out.Y)
}

func TestLiveClientHoverFallsBackToSessionViewport(t *testing.T) {
	AllSessions.Delete("live-test")
	t.Cleanup(func() { AllSessions.Delete("live-test") })
	conn := liveserver(t)

	// default viewport 1000x800: only x flips
	require.NoError(t, conn.WriteJSON(WSIn{Type: WSHOVER, Seq: 1, PX: 990, PY: 10, TW: 100, TH: 30}))
	var out WSOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, WSPLACE, out.Type)
	assert.Equal(t, 875.0, out.X)
	assert.Equal(t, 25.0, out.Y)

	// a reported viewport is remembered for later frames
	require.NoError(t, conn.WriteJSON(WSIn{Type: WSHOVER, Seq: 2, PX: 990, PY: 10, TW: 100, TH: 30, VW: 2000, VH: 800}))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, 1005.0, out.X)

	require.NoError(t, conn.WriteJSON(WSIn{Type: WSHOVER, Seq: 3, PX: 990, PY: 10, TW: 100, TH: 30}))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, 1005.0, out.X)
	assert.Equal(t, 25.0, out.Y)
}

func TestLiveClientNewSentenceCancelsOld(t *testing.T) {
	conn := liveserver(t)

	require.NoError(t, conn.WriteJSON(WSIn{Type: WSSENTENCE, Seq: 1, Sentence: "slow one"}))
	require.NoError(t, conn.WriteJSON(WSIn{Type: WSSENTENCE, Seq: 2, Sentence: "hızlı"}))

	var out WSOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, int64(2), out.Seq, "the superseded sentence never renders")
	assert.Equal(t, analysis.Rendered, out.State)
}

func TestLiveClientRejectsUnknownFrames(t *testing.T) {
	conn := liveserver(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type": "dance"}`)))
	var out WSOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, WSERROR, out.Type)
	assert.Contains(t, out.Error, "dance")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, WSERROR, out.Type)
}

func TestLiveClientEmptySentence(t *testing.T) {
	conn := liveserver(t)
	require.NoError(t, conn.WriteJSON(WSIn{Type: WSSENTENCE, Seq: 1, Sentence: "  "}))
	var out WSOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, analysis.AwaitingInput, out.State)
	assert.Contains(t, out.HTML, vv.AWAITINGINPUT)
}
