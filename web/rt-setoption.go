//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/e-gun/AyracGoServer/internal/gen"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/labstack/echo/v4"
)

// RtSetOption - modify the session: "/setoption/offset/20", "/setoption/viewport/1280x720"
func RtSetOption(c echo.Context) error {
	const (
		FAIL1 = "RtSetOption() was given bad input: %s/%s"
	)
	user := ReadUUIDCookie(c)
	opt := c.Param("opt")
	val := c.Param("val")

	bad := func() error {
		msg.WARN(fmt.Sprintf(FAIL1, opt, val))
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(FAIL1, opt, val))
	}

	var fn func(s *str.ServerSession)

	switch opt {
	case "offset":
		o, err := strconv.Atoi(val)
		if err != nil || o < 0 {
			return bad()
		}
		fn = func(s *str.ServerSession) { s.TooltipOffset = o }
	case "viewport":
		var w, h float64
		if n, err := fmt.Sscanf(val, "%fx%f", &w, &h); err != nil || n != 2 || w < 0 || h < 0 {
			return bad()
		}
		fn = func(s *str.ServerSession) {
			s.ViewportW = w
			s.ViewportH = h
		}
	default:
		return bad()
	}

	return gen.JSONresponse(c, vlt.AllSessions.UpdateSess(user, fn))
}
