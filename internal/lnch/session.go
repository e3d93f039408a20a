//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

// MakeDefaultSession - fill in the blanks when setting up a new session
func MakeDefaultSession(id string) str.ServerSession {
	// note that SessionMap clears every time the server restarts

	var s str.ServerSession
	s.ID = id
	s.TooltipOffset = TooltipOffset()
	s.ViewportW = vv.DEFAULTVIEWPORTW
	s.ViewportH = vv.DEFAULTVIEWPORTH
	s.LatestSeq = 0
	return s
}
