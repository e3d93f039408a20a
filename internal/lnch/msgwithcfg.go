//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/AyracGoServer/internal/mm"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

func NewMessageMakerConfigured() *mm.MessageMaker {
	m := mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
	UpdateMessageMakerWithConfig(m)
	return m
}

func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	m.SetBW(Config.BlackAndWhite)
	m.SetLevel(Config.LogLevel)
}
