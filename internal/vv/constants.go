//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Ayraç Golang Server"
	SHORTNAME = "AGS"
	VERSION   = "0.3.2"

	BLACKANDWHITE       = false
	CACHEBACKEND        = "none" // "none", "sqlite3" (cgo), "sqlite" (pure go), "postgres"
	CACHEDSN            = "file::memory:?cache=shared"
	CACHETABLE          = "tagcache"
	CACHETTLSEC         = 86400
	CONFIGLOCATION      = "."
	CONFIGALTAPTH       = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC         = "ags-conf.json"
	CORSORIGINS         = "*"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 0
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "ayrac_wr"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "ayracDB"
	DEFAULTVIEWPORTH    = 800
	DEFAULTVIEWPORTW    = 1000
	JSONINDENT          = "  "
	MAXBODYSIZE         = "256K"
	MAXECHOREQPERSECOND = 60 // a fast typist plus a busy mouse generates a lot of traffic; the live socket is not counted
	MAXINPUTLEN         = 2048
	POOLMAXCONNS        = 8
	POOLMINCONNS        = 1
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8080
	TAGGERURL           = "http://localhost:8000/tag"
	TAGGERTIMEOUT       = 10 // seconds
	TIMEOUTRD           = 15 * time.Second
	TIMEOUTWR           = 30 * time.Second
	TOOLTIPOFFSET       = 15
	USEGZIP             = false
	WRITEPERMS          = 0644
	WSREADLIMIT         = 1 << 16
	WSPINGPERIOD        = 30 * time.Second
)

//
// TAGGER VOCABULARY AND LAYOUT
//

const (
	PUNCTUATIONTAG = "Punctuation"
)

var (
	// OpeningPunct never takes a space after itself
	OpeningPunct = []string{"(", "[", "“"}
	// AmbiguousPunct alternates between opener and closer within one sentence
	AmbiguousPunct = []string{`"`}
)

//
// USER-VISIBLE SENTINELS
//

const (
	AWAITINGINPUT = "Ayrıştırma sonuçları burada görünecek."
	TAGGINGFAILED = "Error: Could not connect to server."
	TOOLTIPTEMPL  = `<strong>Root:</strong> %s<br><strong>Morpheme:</strong> %s (%s)`
)
