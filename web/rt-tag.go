//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"io"
	"net/http"

	"github.com/e-gun/AyracGoServer/internal/analysis"
	"github.com/e-gun/AyracGoServer/internal/gen"
	"github.com/e-gun/AyracGoServer/internal/render"
	"github.com/e-gun/AyracGoServer/internal/stats"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/tagger"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/labstack/echo/v4"
)

type TagRequest struct {
	Sentence string `json:"sentence"`
	Seq      int64  `json:"seq"`
}

type TagReply struct {
	State      analysis.State        `json:"state"`
	Seq        int64                 `json:"seq,omitempty"`
	HTML       string                `json:"html"`
	Directives []str.RenderDirective `json:"directives"`
	Problems   []int                 `json:"problems,omitempty"`
	Stats      *stats.SentenceStats  `json:"stats,omitempty"`
	Cached     bool                  `json:"cached"`
	Stale      bool                  `json:"stale"`
}

func tagreply(seq int64, r analysis.Result) TagReply {
	tr := TagReply{
		State:      r.State,
		Seq:        seq,
		HTML:       r.HTML,
		Directives: r.Directives,
		Problems:   r.Problems,
		Cached:     r.Cached,
		Stale:      r.State == analysis.Stale,
	}
	if tr.Directives == nil {
		tr.Directives = []str.RenderDirective{}
	}
	if r.State == analysis.Rendered {
		st := r.Stats
		tr.Stats = &st
	}
	return tr
}

// replycode - an unreachable tagger is the server's problem, not the client's
func replycode(r analysis.Result) int {
	if r.State == analysis.Unavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

//
// ROUTING
//

// RtTag - tag a sentence and lay it out
func RtTag(c echo.Context) error {
	const (
		FAIL  = "RtTag() could not parse the request: %s"
		STALE = "RtTag() %s: request %d superseded before it was answered"
	)
	msg.LogPaths("RtTag()")
	user := ReadUUIDCookie(c)

	var rq TagRequest
	if err := c.Bind(&rq); err != nil {
		msg.FYI(fmt.Sprintf(FAIL, err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !vlt.AllSessions.Supersede(user, rq.Seq) {
		return gen.JSONresponse(c, TagReply{State: analysis.Stale, Seq: rq.Seq, Directives: []str.RenderDirective{}, Stale: true})
	}

	res := Analyzer.Analyze(c.Request().Context(), rq.Sentence)
	tr := tagreply(rq.Seq, res)
	if !vlt.AllSessions.IsLatest(user, rq.Seq) {
		msg.PEEK(fmt.Sprintf(STALE, user, rq.Seq))
		tr.Stale = true
	}
	return gen.JSONstatus(c, replycode(res), tr)
}

// RtFormat - lay out tokens that were tagged elsewhere; the body has the same shape as a tagger reply
func RtFormat(c echo.Context) error {
	const (
		FAIL = "RtFormat() could not parse the request: %s"
	)
	msg.LogPaths("RtFormat()")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tokens, err := tagger.Parse(body)
	if err != nil {
		msg.FYI(fmt.Sprintf(FAIL, err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return gen.JSONresponse(c, tagreply(0, Analyzer.FromTokens(tokens)))
}

// RtTagChart - an echarts bar chart of the tags in a sentence
func RtTagChart(c echo.Context) error {
	const (
		FAIL1 = "RtTagChart() could not parse the request: %s"
		FAIL2 = "RtTagChart() could not render the chart: %s"
	)
	msg.LogPaths("RtTagChart()")

	var rq TagRequest
	if err := c.Bind(&rq); err != nil {
		msg.FYI(fmt.Sprintf(FAIL1, err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := Analyzer.Analyze(c.Request().Context(), rq.Sentence)
	switch res.State {
	case analysis.AwaitingInput:
		return c.HTML(http.StatusOK, render.AwaitingInput())
	case analysis.Rendered:
		// fall through to the chart
	default:
		return c.HTML(replycode(res), render.Unavailable())
	}

	htm, err := stats.TagChart(res.Sentence, res.Stats)
	if err != nil {
		msg.WARN(fmt.Sprintf(FAIL2, err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, htm)
}
