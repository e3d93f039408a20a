//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/e-gun/AyracGoServer/internal/analysis"
	"github.com/e-gun/AyracGoServer/internal/stats"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/tooltip"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/gorilla/websocket"
)

//
// WEBSOCKET INFRASTRUCTURE
//

// the browser keeps one socket open: every keystroke sends a "sentence" frame and every mouse move over a
// morpheme sends a "hover" frame; a new sentence frame cancels whatever tagging the previous one started

const (
	WSSENTENCE = "sentence"
	WSHOVER    = "hover"
	WSRENDER   = "render"
	WSPLACE    = "place"
	WSERROR    = "error"
)

// WSIn - what the browser sends
type WSIn struct {
	Type     string   `json:"type"`
	Seq      int64    `json:"seq"`
	Sentence string   `json:"sentence"`
	PX       float64  `json:"px"`
	PY       float64  `json:"py"`
	TW       float64  `json:"tw"`
	TH       float64  `json:"th"`
	VW       float64  `json:"vw"`
	VH       float64  `json:"vh"`
	SX       float64  `json:"sx"`
	SY       float64  `json:"sy"`
	Offset   *float64 `json:"offset,omitempty"`
}

// WSOut - what the browser gets back
type WSOut struct {
	Type       string                `json:"type"`
	Seq        int64                 `json:"seq,omitempty"`
	State      analysis.State        `json:"state,omitempty"`
	HTML       string                `json:"html,omitempty"`
	Directives []str.RenderDirective `json:"directives,omitempty"`
	Problems   []int                 `json:"problems,omitempty"`
	Stats      *stats.SentenceStats  `json:"stats,omitempty"`
	Cached     bool                  `json:"cached,omitempty"`
	X          float64               `json:"x"`
	Y          float64               `json:"y"`
	Error      string                `json:"error,omitempty"`
}

// ResultFrame - a render frame for an analysis.Result
func ResultFrame(seq int64, r analysis.Result) WSOut {
	o := WSOut{
		Type:       WSRENDER,
		Seq:        seq,
		State:      r.State,
		HTML:       r.HTML,
		Directives: r.Directives,
		Problems:   r.Problems,
		Cached:     r.Cached,
	}
	if r.State == analysis.Rendered {
		st := r.Stats
		o.Stats = &st
	}
	return o
}

// Geometry - the hover frame as tooltip input
func (in WSIn) Geometry() tooltip.Geometry {
	return tooltip.Geometry{
		Pointer:  str.Point{X: in.PX, Y: in.PY},
		Tip:      str.Size{W: in.TW, H: in.TH},
		Viewport: str.Size{W: in.VW, H: in.VH},
		Scroll:   str.Point{X: in.SX, Y: in.SY},
	}
}

type LiveClient struct {
	ID     string
	Conn   *websocket.Conn
	An     *analysis.Analyzer
	out    chan WSOut
	mtx    sync.Mutex
	cancel context.CancelFunc
}

func NewLiveClient(id string, conn *websocket.Conn, an *analysis.Analyzer) *LiveClient {
	return &LiveClient{
		ID:   id,
		Conn: conn,
		An:   an,
		out:  make(chan WSOut, 8),
	}
}

// Run - read frames until the socket closes or ctx ends; blocks
func (lc *LiveClient) Run(ctx context.Context) {
	const (
		CLOSED = "LiveClient.Run() %s: socket closed: %s"
		BADJS  = "LiveClient.Run() %s: unreadable frame: %s"
		BADTY  = "unknown frame type '%s'"
	)

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		lc.writeloop(ctx, stop)
	}()

	lc.Conn.SetReadLimit(vv.WSREADLIMIT)
	_ = lc.Conn.SetReadDeadline(time.Now().Add(2 * vv.WSPINGPERIOD))
	lc.Conn.SetPongHandler(func(string) error {
		return lc.Conn.SetReadDeadline(time.Now().Add(2 * vv.WSPINGPERIOD))
	})

	for {
		_, m, err := lc.Conn.ReadMessage()
		if err != nil {
			Msg.TMI(fmt.Sprintf(CLOSED, lc.ID, err))
			break
		}
		_ = lc.Conn.SetReadDeadline(time.Now().Add(2 * vv.WSPINGPERIOD))

		var in WSIn
		if err = json.Unmarshal(m, &in); err != nil {
			Msg.FYI(fmt.Sprintf(BADJS, lc.ID, err))
			lc.send(ctx, WSOut{Type: WSERROR, Error: err.Error()})
			continue
		}

		switch in.Type {
		case WSSENTENCE:
			lc.sentence(ctx, in)
		case WSHOVER:
			lc.send(ctx, lc.hover(in))
		default:
			lc.send(ctx, WSOut{Type: WSERROR, Seq: in.Seq, Error: fmt.Sprintf(BADTY, in.Type)})
		}
	}

	lc.mtx.Lock()
	if lc.cancel != nil {
		lc.cancel()
	}
	lc.mtx.Unlock()
	stop()
	wg.Wait()
}

// sentence - cancel the previous analysis and start this one
func (lc *LiveClient) sentence(ctx context.Context, in WSIn) {
	actx, cancel := context.WithCancel(ctx)

	lc.mtx.Lock()
	if lc.cancel != nil {
		lc.cancel()
	}
	lc.cancel = cancel
	lc.mtx.Unlock()

	AllSessions.Supersede(lc.ID, in.Seq)

	go func() {
		res := lc.An.Analyze(actx, in.Sentence)
		if res.State == analysis.Stale || actx.Err() != nil {
			return
		}
		lc.send(actx, ResultFrame(in.Seq, res))
	}()
}

// hover - vw/vh left at zero mean the last viewport this session reported, as with "/tooltip/place"
func (lc *LiveClient) hover(in WSIn) WSOut {
	s := AllSessions.GetSess(lc.ID)
	off := float64(s.TooltipOffset)
	if in.Offset != nil {
		off = *in.Offset
	}

	g := in.Geometry()
	if in.VW == 0 {
		g.Viewport.W = s.ViewportW
	}
	if in.VH == 0 {
		g.Viewport.H = s.ViewportH
	}
	if in.VW != 0 || in.VH != 0 {
		AllSessions.UpdateSess(lc.ID, func(ss *str.ServerSession) {
			ss.ViewportW = g.Viewport.W
			ss.ViewportH = g.Viewport.H
		})
	}

	p := tooltip.PlaceGeometry(g, off)
	return WSOut{Type: WSPLACE, Seq: in.Seq, X: p.X, Y: p.Y}
}

func (lc *LiveClient) send(ctx context.Context, o WSOut) {
	select {
	case lc.out <- o:
	case <-ctx.Done():
	}
}

// writeloop - the only goroutine that writes to the socket
func (lc *LiveClient) writeloop(ctx context.Context, stop context.CancelFunc) {
	const (
		FAIL = "LiveClient.writeloop() %s: write failed: %s"
	)

	ping := time.NewTicker(vv.WSPINGPERIOD)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = lc.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case o := <-lc.out:
			_ = lc.Conn.SetWriteDeadline(time.Now().Add(vv.TIMEOUTWR))
			if err := lc.Conn.WriteJSON(o); err != nil {
				Msg.FYI(fmt.Sprintf(FAIL, lc.ID, err))
				// unblock ReadMessage() in Run()
				stop()
				_ = lc.Conn.Close()
				return
			}
		case <-ping.C:
			if err := lc.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				stop()
				_ = lc.Conn.Close()
				return
			}
		}
	}
}
