//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/e-gun/AyracGoServer/internal/gen"
	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/render"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

//go:embed emb
var efs embed.FS

const (
	EFP = "emb/frontpage.html"
	EJS = "emb/ayrac.js"
)

type ServerStats struct {
	Uptime    string                `json:"uptime"`
	Sessions  int                   `json:"sessions"`
	Responses vlt.EchoResponseStats `json:"responses"`
	Paths     []string              `json:"paths"`
}

//
// ROUTING
//

// RtFrontpage - send the html for "/"
func RtFrontpage(c echo.Context) error {
	const (
		UPSTR = "[%v] %s uptime: %v [%s]"
		FAIL  = "RtFrontpage() can't build %s: %s"
	)
	// will set if missing
	user := ReadUUIDCookie(c)

	msg.PEEK(fmt.Sprintf(UPSTR, time.Now().Format(time.RFC822), vv.SHORTNAME,
		time.Since(launched).Truncate(time.Second), user))

	t, err := template.ParseFS(efs, EFP)
	if err != nil {
		msg.WARN(fmt.Sprintf(FAIL, EFP, err))
		return c.String(http.StatusNotFound, "")
	}

	subs := map[string]interface{}{
		"name":        vv.MYNAME,
		"placeholder": template.HTML(render.AwaitingInput()),
	}

	var b bytes.Buffer
	if err = t.Execute(&b, subs); err != nil {
		msg.WARN(fmt.Sprintf(FAIL, EFP, err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, b.String())
}

// RtEmbJS - send the front page javascript
func RtEmbJS(c echo.Context) error {
	j, err := efs.ReadFile(EJS)
	if err != nil {
		return c.String(http.StatusNotFound, "")
	}
	return c.Blob(http.StatusOK, "application/javascript", j)
}

// RtServerStats - uptime, sessions, response counts, path counts
func RtServerStats(c echo.Context) error {
	st := ServerStats{
		Uptime:    time.Since(launched).Truncate(time.Second).String(),
		Sessions:  vlt.AllSessions.Count(),
		Responses: Police.Stats(),
		Paths:     lnch.Msg.PathCounts(),
	}
	return gen.JSONresponse(c, st)
}
