//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "math"

// Point - page coordinates in CSS pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size - measured width and height in CSS pixels
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Known - a size that could not be measured (negative, NaN, infinite) counts as zero
func (s Size) Known() Size {
	return Size{W: measured(s.W), H: measured(s.H)}
}

func measured(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
