//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stats

import (
	"testing"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dir(punct bool, tags ...string) str.RenderDirective {
	d := str.RenderDirective{Punctuation: punct}
	for _, t := range tags {
		d.Morphemes = append(d.Morphemes, str.MorphemeView{Text: "x", Tag: t})
	}
	return d
}

func TestComputeEmpty(t *testing.T) {
	ss := Compute(nil)
	assert.Zero(t, ss.Words)
	assert.Zero(t, ss.MeanPerWord)
	assert.Empty(t, ss.Tags)
}

func TestComputeSingleWord(t *testing.T) {
	ss := Compute([]str.RenderDirective{dir(false, "Noun", "A3pl")})
	assert.Equal(t, 1, ss.Words)
	assert.Equal(t, 2.0, ss.MeanPerWord)
	assert.Zero(t, ss.StdPerWord)
}

func TestComputeSentence(t *testing.T) {
	dd := []str.RenderDirective{
		dir(false, "Noun", "A3pl", "Loc"),
		dir(false, "Verb"),
		dir(true, "Punctuation"),
	}
	ss := Compute(dd)
	assert.Equal(t, 2, ss.Words)
	assert.Equal(t, 1, ss.Punctuation)
	assert.Equal(t, 5, ss.Morphemes)
	assert.Equal(t, 3, ss.MaxPerWord)
	assert.Equal(t, 2.0, ss.MeanPerWord)
	// sample standard deviation of {3, 1}
	assert.InDelta(t, 1.414, ss.StdPerWord, 0.001)
	require.Len(t, ss.Tags, 5)
}

func TestHistogramOrder(t *testing.T) {
	tc := histogram(map[string]int{"Verb": 1, "Noun": 3, "Adj": 1})
	assert.Equal(t, []TagCount{{"Noun", 3}, {"Adj", 1}, {"Verb", 1}}, tc)
}

func TestTagChart(t *testing.T) {
	ss := Compute([]str.RenderDirective{dir(false, "Noun", "Loc"), dir(true, "Punctuation")})
	h, err := TagChart("evde.", ss)
	require.NoError(t, err)
	assert.Contains(t, h, "echarts")
	assert.Contains(t, h, "Punctuation")
	assert.Contains(t, h, SERIESNAME)
}
