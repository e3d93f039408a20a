//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

const (
	WORDCLASS   = "word-token"
	SPACEDCLASS = "word-token spaced"
	MORPHCLASS  = "morpheme-span"
	PLACEHOLDER = `<p class="placeholder">%s</p>`
	ERRORLINE   = `<p class="error">%s</p>`
	WORDSPAN    = `<span class="%s">`
	MORPHSPAN   = `<span class="%s" data-tag="%s" data-morpheme="%s" data-root="%s">%s</span>`
	CLOSESPAN   = `</span>`
)

// Directives - one word-token span per directive holding one morpheme-span per morpheme
func Directives(dd []str.RenderDirective) string {
	var sb strings.Builder
	for _, d := range dd {
		class := WORDCLASS
		if d.TrailingSpace {
			class = SPACEDCLASS
		}
		sb.WriteString(fmt.Sprintf(WORDSPAN, class))
		for _, m := range d.Morphemes {
			sb.WriteString(fmt.Sprintf(MORPHSPAN, MORPHCLASS,
				html.EscapeString(m.Tag), html.EscapeString(m.Text), html.EscapeString(m.Root),
				html.EscapeString(m.Text)))
		}
		sb.WriteString(CLOSESPAN)
	}
	return sb.String()
}

// AwaitingInput - what the results area shows before anything is typed
func AwaitingInput() string {
	return fmt.Sprintf(PLACEHOLDER, html.EscapeString(vv.AWAITINGINPUT))
}

// Unavailable - what the results area shows when the tagger could not be used
func Unavailable() string {
	return fmt.Sprintf(ERRORLINE, html.EscapeString(vv.TAGGINGFAILED))
}

// TooltipText - "Root: ev / Morpheme: ler (A3pl)"
func TooltipText(root string, morpheme string, tag string) string {
	return fmt.Sprintf(vv.TOOLTIPTEMPL, html.EscapeString(root), html.EscapeString(morpheme), html.EscapeString(tag))
}
