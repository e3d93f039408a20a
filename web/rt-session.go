//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtSessionSetsCookie - turn the session into a cookie
func RtSessionSetsCookie(c echo.Context) error {
	const (
		FAIL = "RtSessionSetsCookie() could not marshal the session"
	)
	num := c.Param("num")
	user := ReadUUIDCookie(c)
	s := vlt.AllSessions.GetSess(user)

	v, e := json.Marshal(s)
	if e != nil {
		v = []byte{}
		msg.WARN(FAIL)
	}
	swap := strings.NewReplacer(`"`, "%22", ",", "%2C", " ", "%20")
	vs := swap.Replace(string(v))

	// note that cookie.Path = "/" is essential; otherwise different cookies for different contexts
	cookie := new(http.Cookie)
	cookie.Name = "session" + num
	cookie.Path = "/"
	cookie.Value = vs
	cookie.Expires = time.Now().Add(4800 * time.Hour)
	c.SetCookie(cookie)

	return c.JSONPretty(http.StatusOK, "", vv.JSONINDENT)
}

// RtSessionGetCookie - turn a stored cookie into a session
func RtSessionGetCookie(c echo.Context) error {
	// the cookie is client input: only the display settings are taken from it
	const (
		FAIL1 = "RtSessionGetCookie failed to read cookie %s for %s"
		FAIL2 = "RtSessionGetCookie failed to unmarshal cookie %s for %s: %s"
	)

	user := ReadUUIDCookie(c)
	num := c.Param("num")
	cookie, err := c.Cookie("session" + num)
	if err != nil {
		msg.WARN(fmt.Sprintf(FAIL1, num, user))
		return c.String(http.StatusOK, "")
	}

	var s str.ServerSession
	// {%22ID%22:%22723073ae-09a7-4b24-a5d6-7e20603d8c44%22%2C%22tooltipoffset%22:15...}
	swap := strings.NewReplacer("%22", `"`, "%2C", ",", "%20", " ")
	cv := swap.Replace(cookie.Value)

	if err = json.Unmarshal([]byte(cv), &s); err != nil {
		msg.WARN(fmt.Sprintf(FAIL2, num, user, err))
		return c.String(http.StatusOK, "")
	}

	vlt.AllSessions.UpdateSess(user, func(ss *str.ServerSession) {
		if s.TooltipOffset >= 0 {
			ss.TooltipOffset = s.TooltipOffset
		}
		if s.ViewportW > 0 && s.ViewportH > 0 {
			ss.ViewportW = s.ViewportW
			ss.ViewportH = s.ViewportH
		}
	})

	return c.Redirect(http.StatusFound, "/")
}

// RtResetSession - delete and then reset the session
func RtResetSession(c echo.Context) error {
	id := ReadUUIDCookie(c)

	vlt.AllSessions.Delete(id)

	// reset the user ID and session
	newid := writeUUIDCookie(c)
	vlt.AllSessions.InsertSess(lnch.MakeDefaultSession(newid))

	return c.Redirect(http.StatusFound, "/")
}
