//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/e-gun/AyracGoServer/internal/analysis"
	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/mm"
	"github.com/e-gun/AyracGoServer/internal/tagger"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	Police.SlowDown = 0
	Police.Start(ctx)
	lnch.Msg.Out = io.Discard
	code := m.Run()
	cancel()
	os.Exit(code)
}

const (
	EVDE = `{"tokens": [{"ev": "Noun", "de": "Loc"}, {"kaldım": "Verb"}, {".": "Punctuation"}]}`
)

// fixture - an echo server in front of a fake tagger that answers EVDE, or 503 when down is true
func fixture(t *testing.T, down bool) *echo.Echo {
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, EVDE)
	}))
	t.Cleanup(tg.Close)

	cfg := *lnch.BuildDefaultConfig()
	an := analysis.NewAnalyzer(tagger.NewClient(tg.URL, 2*time.Second), nil, lnch.Msg)
	return NewEchoServer(an, cfg)
}

func do(e *echo.Echo, method string, path string, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodereply(t *testing.T, rec *httptest.ResponseRecorder) TagReply {
	var tr TagReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tr), rec.Body.String())
	return tr
}

func TestRtTag(t *testing.T) {
	e := fixture(t, false)
	rec := do(e, http.MethodPost, "/tag", `{"sentence": "evde kaldım."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	tr := decodereply(t, rec)
	assert.Equal(t, analysis.Rendered, tr.State)
	require.Len(t, tr.Directives, 3)
	assert.True(t, tr.Directives[0].TrailingSpace)
	assert.Contains(t, tr.HTML, `<span class="word-token spaced">`)
	require.NotNil(t, tr.Stats)
	assert.Equal(t, 2, tr.Stats.Words)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestRtTagEmpty(t *testing.T) {
	e := fixture(t, false)
	tr := decodereply(t, do(e, http.MethodPost, "/tag", `{"sentence": "   "}`))
	assert.Equal(t, analysis.AwaitingInput, tr.State)
	assert.Contains(t, tr.HTML, vv.AWAITINGINPUT)
	assert.Empty(t, tr.Directives)
}

func TestRtTagUnavailable(t *testing.T) {
	e := fixture(t, true)
	rec := do(e, http.MethodPost, "/tag", `{"sentence": "ev"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	tr := decodereply(t, rec)
	assert.Equal(t, analysis.Unavailable, tr.State)
	assert.Contains(t, tr.HTML, vv.TAGGINGFAILED)
}

func TestRtTagBadBody(t *testing.T) {
	e := fixture(t, false)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/tag", `{"sentence": `).Code)
}

func TestRtTagStaleSequence(t *testing.T) {
	e := fixture(t, false)

	first := do(e, http.MethodPost, "/tag", `{"sentence": "ev", "seq": 5}`)
	require.Equal(t, http.StatusOK, first.Code)
	cookie := first.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/tag", strings.NewReader(`{"sentence": "ev", "seq": 3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	tr := decodereply(t, rec)
	assert.True(t, tr.Stale)
	assert.Equal(t, analysis.Stale, tr.State)
}

func TestRtFormatScenarios(t *testing.T) {
	e := fixture(t, false)
	for _, st := range SelfTests() {
		if st.path != "/format" {
			continue
		}
		t.Run(st.id, func(t *testing.T) {
			rec := do(e, http.MethodPost, st.path, st.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.NoError(t, st.want(rec.Body.Bytes()))
		})
	}
}

func TestRtFormatReportsMalformed(t *testing.T) {
	e := fixture(t, false)
	tr := decodereply(t, do(e, http.MethodPost, "/format", `{"tokens": [{"bir": "Num"}, {}, {"iki": "Num"}]}`))
	assert.Equal(t, []int{1}, tr.Problems)
	assert.Len(t, tr.Directives, 2)
}

func TestRtFormatRejects(t *testing.T) {
	e := fixture(t, false)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/format", `{"tokens": [{"ev": 3}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/format", `[]`).Code)
}

func TestRtTagChart(t *testing.T) {
	e := fixture(t, false)
	rec := do(e, http.MethodPost, "/tag/chart", `{"sentence": "evde kaldım."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")
	assert.Contains(t, rec.Body.String(), "Loc")

	rec = do(fixture(t, true), http.MethodPost, "/tag/chart", `{"sentence": "ev"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRtTooltipPlace(t *testing.T) {
	e := fixture(t, false)
	for _, st := range SelfTests() {
		if !strings.HasPrefix(st.path, "/tooltip") {
			continue
		}
		rec := do(e, http.MethodGet, st.path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, st.want(rec.Body.Bytes()))
	}

	// unmeasured tooltip, session offset and viewport
	rec := do(e, http.MethodGet, "/tooltip/place?px=990&py=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, placement(975, 25)(rec.Body.Bytes()))

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/tooltip/place?py=10", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/tooltip/place?px=a&py=10", "").Code)
}

func TestRtTooltipText(t *testing.T) {
	e := fixture(t, false)
	rec := do(e, http.MethodGet, "/tooltip/text?root=ev&morpheme=ler&tag=A3pl", "")
	assert.Equal(t, "<strong>Root:</strong> ev<br><strong>Morpheme:</strong> ler (A3pl)", rec.Body.String())
}

func TestRtSetOption(t *testing.T) {
	e := fixture(t, false)
	rec := do(e, http.MethodGet, "/setoption/offset/30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tooltipoffset":30`)

	rec = do(e, http.MethodGet, "/setoption/viewport/1280x720", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewportwidth":1280`)

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/setoption/offset/-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/setoption/colour/red", "").Code)
}

func TestRtResetSession(t *testing.T) {
	e := fixture(t, false)
	first := do(e, http.MethodGet, "/setoption/offset/20", "")
	old := first.Result().Cookies()[0].Value
	require.True(t, vlt.AllSessions.IsInVault(old))

	req := httptest.NewRequest(http.MethodGet, "/reset/session", nil)
	req.AddCookie(&http.Cookie{Name: "ID", Value: old})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, vlt.AllSessions.IsInVault(old))
	fresh := rec.Result().Cookies()[0].Value
	assert.NotEqual(t, old, fresh)
	assert.True(t, vlt.AllSessions.IsInVault(fresh))
}

func TestRtFrontpage(t *testing.T) {
	e := fixture(t, false)
	rec := do(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), vv.AWAITINGINPUT)
	assert.Contains(t, rec.Body.String(), "/emb/js/ayrac.js")

	rec = do(e, http.MethodGet, "/emb/js/ayrac.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "WebSocket")
}

func TestRtServerStats(t *testing.T) {
	e := fixture(t, false)
	do(e, http.MethodPost, "/format", `{"tokens": []}`)
	rec := do(e, http.MethodGet, "/get/json/serverstats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st ServerStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Contains(t, strings.Join(st.Paths, " "), "RtFormat()")
}

func TestCORS(t *testing.T) {
	e := fixture(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/tag", nil)
	req.Header.Set("Origin", "http://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRtWebsocket(t *testing.T) {
	srv := httptest.NewServer(fixture(t, false))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	require.NoError(t, conn.WriteJSON(vlt.WSIn{Type: vlt.WSSENTENCE, Seq: 1, Sentence: "evde kaldım."}))
	var out vlt.WSOut
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, vlt.WSRENDER, out.Type)
	assert.Len(t, out.Directives, 3)
}

func TestSelfTestSuiteAgainstLiveServer(t *testing.T) {
	srv := httptest.NewServer(fixture(t, false))
	defer srv.Close()

	var b bytes.Buffer
	m := mm.NewMessageMaker("Self Test", "AGS-SELFTEST", vv.VERSION)
	m.Out = &b
	m.SetBW(true)
	assert.Zero(t, selftestsuite(context.Background(), srv.URL, m), b.String())
}
