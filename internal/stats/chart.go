//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stats

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

//
// GRAPHING
//

// see also: https://echarts.apache.org/en/option.html#series-bar

// TagChart - the html and js for a bar chart of the tag histogram
func TagChart(sentence string, ss SentenceStats) (string, error) {
	bar := newtagbar(sentence, ss)

	xx := make([]string, len(ss.Tags))
	bd := make([]opts.BarData, len(ss.Tags))
	for i, t := range ss.Tags {
		xx[i] = t.Tag
		bd[i] = opts.BarData{Name: t.Tag, Value: t.Count}
	}

	bar.SetXAxis(xx).AddSeries(SERIESNAME, bd,
		charts.WithLabelOpts(opts.Label{Show: true, Position: "top"}),
	)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const (
	SERIESNAME = "morphemes"
)

// newtagbar - return a pre-formatted charts.Bar
func newtagbar(sentence string, ss SentenceStats) *charts.Bar {
	const (
		CHRTWIDTH  = "900px"
		CHRTHEIGHT = "500px"
		TITLESTR   = "Tags in »%s«"
		SUBTTL     = "%d words, %d morphemes; %.2f ± %.2f morphemes per word"
		LEFTALIGN  = "20"
		BOTTALIGN  = "3%"
		SAVETYPE   = "png"
		SAVESTR    = "Save to file..."
	)

	tit := opts.Title{
		Title:    fmt.Sprintf(TITLESTR, sentence),
		Subtitle: fmt.Sprintf(SUBTTL, ss.Words, ss.Morphemes, ss.MeanPerWord, ss.StdPerWord),
		Left:     LEFTALIGN,
	}

	tbs := opts.ToolBoxFeatureSaveAsImage{
		Show:  true,
		Type:  SAVETYPE,
		Title: SAVESTR, // get chinese if ""
	}

	tbo := opts.Toolbox{
		Show:    true,
		Orient:  "vertical",
		Left:    LEFTALIGN,
		Bottom:  BOTTALIGN,
		Feature: &opts.ToolBoxFeature{SaveAsImage: &tbs},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: CHRTWIDTH, Height: CHRTHEIGHT}),
		charts.WithTitleOpts(tit),
		charts.WithToolboxOpts(tbo),
	)
	return bar
}
