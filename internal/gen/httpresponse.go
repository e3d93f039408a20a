//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	return JSONstatus(c, http.StatusOK, jsr)

	// note that JSONPretty will end up strikingly prominent on the profiler: a waste of memory and cycles unless
	// you are debugging and want to be able to inspect the json manually
}

// JSONstatus - same as JSONresponse but with a status other than 200; the body is still a full reply
func JSONstatus(c echo.Context, code int, jsr any) error {
	return c.JSON(code, jsr)
}
