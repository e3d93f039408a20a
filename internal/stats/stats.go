//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stats

import (
	"math"
	"sort"

	"github.com/e-gun/AyracGoServer/internal/str"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/stat"
)

// TagCount - one bar of the tag histogram
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SentenceStats - morphological density of one sentence; punctuation is counted in Tags but not in Words
type SentenceStats struct {
	Words       int        `json:"words"`
	Punctuation int        `json:"punctuation"`
	Morphemes   int        `json:"morphemes"`
	MeanPerWord float64    `json:"meanperword"`
	StdPerWord  float64    `json:"stdperword"`
	MaxPerWord  int        `json:"maxperword"`
	Tags        []TagCount `json:"tags"`
}

// Compute - tally the directives that Format() produced
func Compute(dd []str.RenderDirective) SentenceStats {
	var ss SentenceStats
	var perword []float64
	hist := make(map[string]int)

	for _, d := range dd {
		ss.Morphemes += len(d.Morphemes)
		for _, m := range d.Morphemes {
			hist[m.Tag]++
		}
		if d.Punctuation {
			ss.Punctuation++
			continue
		}
		ss.Words++
		perword = append(perword, float64(len(d.Morphemes)))
		if len(d.Morphemes) > ss.MaxPerWord {
			ss.MaxPerWord = len(d.Morphemes)
		}
	}

	switch len(perword) {
	case 0:
	case 1:
		ss.MeanPerWord = perword[0]
	default:
		ss.MeanPerWord, ss.StdPerWord = stat.MeanStdDev(perword, nil)
	}
	ss.MeanPerWord = round(ss.MeanPerWord)
	ss.StdPerWord = round(ss.StdPerWord)

	ss.Tags = histogram(hist)
	return ss
}

// histogram - most frequent first; ties alphabetical
func histogram(hist map[string]int) []TagCount {
	keys := maps.Keys(hist)
	sort.Strings(keys)
	tc := make([]TagCount, len(keys))
	for i, k := range keys {
		tc[i] = TagCount{Tag: k, Count: hist[k]}
	}
	sort.SliceStable(tc, func(i, j int) bool { return tc[i].Count > tc[j].Count })
	return tc
}

func round(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Round(f*1000) / 1000
}
