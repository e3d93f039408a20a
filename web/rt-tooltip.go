//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"

	"github.com/e-gun/AyracGoServer/internal/gen"
	"github.com/e-gun/AyracGoServer/internal/render"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/tooltip"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/labstack/echo/v4"
)

type TooltipPlacement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

//
// ROUTING
//

// RtTooltipPlace - where the tooltip goes for this pointer position
func RtTooltipPlace(c echo.Context) error {
	// "/tooltip/place?px=990&py=10&tw=100&th=30&vw=1000&vh=800&sx=0&sy=0[&off=15]"
	// tw/th absent: not yet measured; vw/vh absent: the last viewport this session reported; off absent: the session offset
	const (
		FAIL = "RtTooltipPlace() was given bad input: %s"
	)
	msg.LogPaths("RtTooltipPlace()")
	user := ReadUUIDCookie(c)
	s := vlt.AllSessions.GetSess(user)

	var g tooltip.Geometry
	g.Viewport = str.Size{W: s.ViewportW, H: s.ViewportH}
	off := float64(s.TooltipOffset)

	err := echo.QueryParamsBinder(c).
		MustFloat64("px", &g.Pointer.X).
		MustFloat64("py", &g.Pointer.Y).
		Float64("tw", &g.Tip.W).
		Float64("th", &g.Tip.H).
		Float64("vw", &g.Viewport.W).
		Float64("vh", &g.Viewport.H).
		Float64("sx", &g.Scroll.X).
		Float64("sy", &g.Scroll.Y).
		Float64("off", &off).
		BindError()
	if err != nil {
		msg.FYI(fmt.Sprintf(FAIL, err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if c.QueryParam("vw") != "" || c.QueryParam("vh") != "" {
		vlt.AllSessions.UpdateSess(user, func(ss *str.ServerSession) {
			ss.ViewportW = g.Viewport.W
			ss.ViewportH = g.Viewport.H
		})
	}

	p := tooltip.PlaceGeometry(g, off)
	return gen.JSONresponse(c, TooltipPlacement{X: p.X, Y: p.Y})
}

// RtTooltipText - the body of the tooltip for one morpheme
func RtTooltipText(c echo.Context) error {
	msg.LogPaths("RtTooltipText()")
	return c.HTML(http.StatusOK, render.TooltipText(c.QueryParam("root"), c.QueryParam("morpheme"), c.QueryParam("tag")))
}
