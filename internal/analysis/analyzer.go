//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package analysis turns a typed sentence into something the browser can draw:
// cache or tagger, then layout, then statistics.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/e-gun/AyracGoServer/internal/db"
	"github.com/e-gun/AyracGoServer/internal/layout"
	"github.com/e-gun/AyracGoServer/internal/mm"
	"github.com/e-gun/AyracGoServer/internal/render"
	"github.com/e-gun/AyracGoServer/internal/stats"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/tagger"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type State string

const (
	AwaitingInput State = "awaiting"
	Rendered      State = "rendered"
	Unavailable   State = "unavailable"
	Stale         State = "stale"
)

// Tagger - anything that can turn a sentence into tokens; *tagger.Client in production
type Tagger interface {
	Tag(ctx context.Context, sentence string) (tagger.Response, error)
}

type Result struct {
	State      State                 `json:"state"`
	Sentence   string                `json:"sentence"`
	HTML       string                `json:"html"`
	Directives []str.RenderDirective `json:"directives"`
	Problems   []int                 `json:"problems,omitempty"`
	Stats      stats.SentenceStats   `json:"stats"`
	Cached     bool                  `json:"cached"`
	Err        error                 `json:"-"`
}

type Analyzer struct {
	Tagger Tagger
	Cache  db.TagCache
	Msg    *mm.MessageMaker
	prn    *message.Printer
}

func NewAnalyzer(t Tagger, c db.TagCache, m *mm.MessageMaker) *Analyzer {
	if c == nil {
		c = db.NoCache{}
	}
	if m == nil {
		m = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
	}
	return &Analyzer{Tagger: t, Cache: c, Msg: m, prn: message.NewPrinter(language.English)}
}

// Analyze - sentence in, drawable result out; never returns an error, only a State
func (a *Analyzer) Analyze(ctx context.Context, sentence string) Result {
	const (
		LONG   = "Analyze() truncated input of %s runes to %s"
		CFAIL  = "Analyze() cache %s failed: %s"
		CSTALE = "Analyze() discarding unreadable cache entry for '%s': %s"
		TFAIL  = "Analyze() tagging failed for '%s': %s"
	)

	s := db.NormalizeSentence(sentence)
	if s == "" {
		return Result{State: AwaitingInput, HTML: render.AwaitingInput()}
	}

	if r := []rune(s); len(r) > vv.MAXINPUTLEN {
		a.Msg.WARN(a.prn.Sprintf(LONG, a.prn.Sprintf("%d", len(r)), a.prn.Sprintf("%d", vv.MAXINPUTLEN)))
		s = string(r[:vv.MAXINPUTLEN])
	}

	key := db.CacheKey(s)
	body, hit, err := a.Cache.Get(ctx, key)
	if err != nil {
		a.Msg.WARN(fmt.Sprintf(CFAIL, "read", err))
	}
	if hit {
		tokens, perr := tagger.Parse(body)
		if perr == nil {
			res := a.build(s, tokens)
			res.Cached = true
			return res
		}
		a.Msg.NOTE(fmt.Sprintf(CSTALE, s, perr))
	}

	resp, err := a.Tagger.Tag(ctx, s)
	if ctx.Err() != nil {
		// a newer sentence (or a closed tab) made this one irrelevant
		return Result{State: Stale, Sentence: s, Err: ctx.Err()}
	}
	if err != nil {
		a.Msg.WARN(fmt.Sprintf(TFAIL, s, err))
		return Result{State: Unavailable, Sentence: s, HTML: render.Unavailable(), Err: err}
	}

	if perr := a.Cache.Put(ctx, key, s, resp.Raw); perr != nil {
		a.Msg.WARN(fmt.Sprintf(CFAIL, "write", perr))
	}
	return a.build(s, resp.Tokens)
}

// FromTokens - lay out tokens that arrived already tagged
func (a *Analyzer) FromTokens(tokens []str.TaggedToken) Result {
	return a.build("", tokens)
}

func (a *Analyzer) build(s string, tokens []str.TaggedToken) Result {
	const (
		MALF = "skipped %s malformed token(s) of %s in '%s'"
	)

	dd, err := layout.Format(tokens)
	res := Result{
		State:      Rendered,
		Sentence:   s,
		Directives: dd,
		HTML:       render.Directives(dd),
		Stats:      stats.Compute(dd),
		Err:        err,
	}
	if err != nil {
		res.Problems = layout.Malformed(err)
		a.Msg.NOTE(a.prn.Sprintf(MALF, a.prn.Sprintf("%d", len(res.Problems)), a.prn.Sprintf("%d", len(tokens)), s))
	}
	return res
}

// IsUnavailable - did this error come from the tagger being unusable?
func IsUnavailable(err error) bool {
	return errors.Is(err, tagger.ErrTaggingUnavailable)
}
