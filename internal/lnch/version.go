//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"runtime"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
)

//
// VERSION INFO BUILD TIME INJECTION
//

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc
// values are loaded into this file at runtime by main.go

var GitCommit string
var VersSuppl string
var BuildDate string

func VersionLine(cc str.CurrentConfiguration) string {
	// example:
	// [AGS] Ayraç Golang Server (v0.3.2) [git: 64974732] [gl=3; el=0] [cache: sqlite]
	const (
		SN = "[C1%sC0] "
		GC = " [C4git: C4%sC0]"
		LL = " [C6gl=%d; el=%dC0]"
		ME = "C5%sC0 (C2v%sC0)"
		CB = " [C3cache: %sC0]"
	)
	sn := fmt.Sprintf(SN, vv.SHORTNAME)
	gc := ""
	if GitCommit != "" {
		gc = fmt.Sprintf(GC, GitCommit)
	}

	ll := fmt.Sprintf(LL, cc.LogLevel, cc.EchoLog)
	cb := fmt.Sprintf(CB, cc.CacheBackend)
	versioninfo := fmt.Sprintf(ME, vv.MYNAME, vv.VERSION+VersSuppl)
	return Msg.ColStyle(sn + versioninfo + gc + ll + cb)
}

func PrintVersion(cc str.CurrentConfiguration) {
	fmt.Println(VersionLine(cc))
}

func PrintBuildInfo(cc str.CurrentConfiguration) {
	// example:
	// 	Built:	2023-11-14@19:02:51		Golang:	go1.21.4
	//	System:	darwin-arm64			Tagger:	http://localhost:8000/tag
	const (
		BD = "\tS1Built:S0\tC3%sC0\t"
		GV = "\tS1Golang:S0\tC3%sC0\n"
		SY = "\tS1System:S0\tC3%s-%sC0\t"
		TG = "\t\tS1Tagger:S0\tC3%sC0"
	)

	bi := ""
	if BuildDate != "" {
		bi = Msg.ColStyle(fmt.Sprintf(BD, BuildDate))
	}
	bi += Msg.ColStyle(fmt.Sprintf(GV, runtime.Version()))
	bi += Msg.ColStyle(fmt.Sprintf(SY, runtime.GOOS, runtime.GOARCH))
	bi += Msg.ColStyle(fmt.Sprintf(TG, cc.TaggerURL))
	fmt.Println(bi)
}
