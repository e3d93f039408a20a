//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var (
	Upgrader = websocket.Upgrader{CheckOrigin: checkorigin}
)

// checkorigin - same host always; other origins only if CORS lets them in
func checkorigin(r *http.Request) bool {
	o := r.Header.Get("Origin")
	if o == "" {
		return true
	}
	u, err := url.Parse(o)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	if lnch.Config == nil {
		return false
	}
	allowed := strings.Split(lnch.Config.CORSOrigins, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}
	return slices.Contains(allowed, "*") || slices.Contains(allowed, o)
}

//
// THE ROUTE
//

// RtWebsocket - the live sentence/hover channel (one per browser tab)
func RtWebsocket(c echo.Context) error {
	const (
		FAILCON = "RtWebsocket(): ws connection failed"
	)
	msg.LogPaths("RtWebsocket()")
	user := ReadUUIDCookie(c)

	ws, err := Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		msg.NOTE(FAILCON)
		return nil
	}
	defer ws.Close()

	vlt.NewLiveClient(user, ws, Analyzer).Run(c.Request().Context())
	return nil
}
