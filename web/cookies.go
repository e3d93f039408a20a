//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/vlt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReadUUIDCookie - find the ID of the client
func ReadUUIDCookie(c echo.Context) string {
	cookie, err := c.Cookie("ID")
	if err != nil {
		id := writeUUIDCookie(c)
		vlt.AllSessions.InsertSess(lnch.MakeDefaultSession(id))
		return id
	}
	id := cookie.Value

	if !vlt.AllSessions.IsInVault(id) {
		vlt.AllSessions.InsertSess(lnch.MakeDefaultSession(id))
	}

	return id
}

// writeUUIDCookie - set the ID of the client
func writeUUIDCookie(c echo.Context) string {
	cookie := new(http.Cookie)
	cookie.Name = "ID"
	cookie.Path = "/"
	cookie.Value = uuid.New().String()
	cookie.Expires = time.Now().Add(4800 * time.Hour)
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
	msg.TMI(fmt.Sprintf("writeUUIDCookie() - new ID set: %s", cookie.Value))
	return cookie.Value
}
