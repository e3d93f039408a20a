//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"github.com/e-gun/AyracGoServer/internal/lnch"
)

var (
	Msg         = lnch.Msg
	AllSessions = MakeSessionVault()
)
