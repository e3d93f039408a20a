//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tooltip

import (
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

const (
	DefaultOffset = float64(vv.TOOLTIPOFFSET)
)

// Geometry - everything measured at the moment the pointer moved
type Geometry struct {
	Pointer  str.Point `json:"pointer"`
	Tip      str.Size  `json:"tooltip"`
	Viewport str.Size  `json:"viewport"`
	Scroll   str.Point `json:"scroll"`
}

// Place - put the tooltip below and to the right of the pointer unless that would cross the visible edge
//
// Each axis flips on its own. A tooltip bigger than the viewport can still overflow on the flipped side.
// Unmeasured sizes count as zero.
func Place(pointer str.Point, tip str.Size, viewport str.Size, scroll str.Point, offset float64) str.Point {
	tip = tip.Known()
	viewport = viewport.Known()

	x := pointer.X + offset
	y := pointer.Y + offset

	if x+tip.W > viewport.W+scroll.X {
		x = pointer.X - tip.W - offset
	}
	if y+tip.H > viewport.H+scroll.Y {
		y = pointer.Y - tip.H - offset
	}
	return str.Point{X: x, Y: y}
}

// PlaceGeometry - Place with a bundled Geometry
func PlaceGeometry(g Geometry, offset float64) str.Point {
	return Place(g.Pointer, g.Tip, g.Viewport, g.Scroll, offset)
}
