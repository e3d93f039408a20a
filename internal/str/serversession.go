//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

//
// SERVERSESSIONS
//

type ServerSession struct {
	ID            string
	TooltipOffset int     `json:"tooltipoffset"`
	ViewportW     float64 `json:"viewportwidth"`
	ViewportH     float64 `json:"viewportheight"`
	LatestSeq     int64   `json:"latestseq"`
	Requests      int
}
