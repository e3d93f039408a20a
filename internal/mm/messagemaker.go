//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGFYI
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	BLUE2                = "\033[38;5;68m"  // SteelBlue3
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	YELLOW2              = "\033[38;5;143m" // DarkKhaki
	GREY3                = "\033[38;5;242m" // Grey42
	WHITE                = "\033[38;5;255m" // Grey93
	BLINK                = "\033[30;0;5m"
	PANIC                = "[%s%s v.%s%s] %sUNRECOVERABLE ERROR%s\n"
	PANIC2               = "[%s%s v.%s%s] (%s%s%s) %sUNRECOVERABLE ERROR%s\n"
)

type MessageMaker struct {
	Lnc  time.Time
	BW   bool
	LLvl int
	LNm  string
	SNm  string
	Ver  string
	Win  bool
	Out  io.Writer
	mtx  sync.RWMutex
	pth  map[string]int
}

// NewMessageMaker - a MessageMaker writing to stdout at log level zero
func NewMessageMaker(longname string, shortname string, version string) *MessageMaker {
	return &MessageMaker{
		Lnc:  time.Now(),
		LNm:  longname,
		SNm:  shortname,
		Ver:  version,
		Win:  runtime.GOOS == "windows",
		Out:  os.Stdout,
		pth:  make(map[string]int),
		LLvl: 0,
	}
}

// SetLevel - change the verbosity; safe to call while other goroutines are emitting
func (m *MessageMaker) SetLevel(l int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.LLvl = l
}

// SetBW - toggle black-and-white output
func (m *MessageMaker) SetBW(bw bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.BW = bw
}

func (m *MessageMaker) level() (int, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.LLvl, m.BW
}

func (m *MessageMaker) out() io.Writer {
	if m.Out == nil {
		return os.Stdout
	}
	return m.Out
}

func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }
func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }
func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }
func (m *MessageMaker) FYI(s string)  { m.Emit(s, MSGFYI) }
func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }
func (m *MessageMaker) TMI(s string)  { m.Emit(s, MSGTMI) }

// Emit - send a message to the terminal, perhaps adding color and style to it
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "[AGS] RtTag() skipped 1 malformed token"

	ll, bw := m.level()
	if ll < threshold {
		return
	}

	if !m.Win && !bw {
		var color string

		switch threshold {
		case MSGMAND:
			color = GREEN
		case MSGCRIT:
			color = RED1
		case MSGWARN:
			color = YELLOW2
		case MSGNOTE:
			color = YELLOW1
		case MSGFYI:
			color = CYAN2
		case MSGPEEK:
			color = BLUE2
		case MSGTMI:
			color = GREY3
		default:
			color = WHITE
		}
		fmt.Fprintf(m.out(), "[%s%s%s] %s%s%s\n", YELLOW1, m.SNm, RESET, color, message, RESET)
	} else {
		// terminal color codes not w's friend
		fmt.Fprintf(m.out(), "[%s] %s\n", m.SNm, message)
	}
}

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	_, bw := m.level()
	if !m.Win && !bw {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD    = "\033[1m"
		ITAL    = "\033[3m"
		UNDER   = "\033[4m"
		REVERSE = "\033[7m"
		STRIKE  = "\033[9m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S4", "", "S5", "", "S0", "")

	_, bw := m.level()
	if !m.Win && !bw {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S4", STRIKE, "S5", REVERSE,
			"S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// EC - report error and exit; only for use while launching
func (m *MessageMaker) EC(err error) {
	if err != nil {
		fmt.Fprintf(m.out(), PANIC, YELLOW2, m.LNm, m.Ver, RESET, RED1, RESET)
		fmt.Fprintln(m.out(), err)
		m.ExitOrHang(1)
	}
}

// EF - report error and function; then exit
func (m *MessageMaker) EF(err error, fn string) {
	if err != nil {
		fmt.Fprintf(m.out(), PANIC2, YELLOW2, m.LNm, m.Ver, RESET, CYAN2, fn, RESET, RED1, RESET)
		fmt.Fprintln(m.out(), err)
		m.ExitOrHang(1)
	}
}

// ExitOrHang - Windows should hang to keep the error visible before the window closes and hides it
func (m *MessageMaker) ExitOrHang(e int) {
	const (
		HANG = `Execution suspended. %s is now frozen. Note any errors above. Execution will halt after %d seconds.`
		SUSP = 60
	)
	if !m.Win {
		os.Exit(e)
	} else {
		m.Emit(fmt.Sprintf(HANG, m.LNm, SUSP), MSGMAND)
		time.Sleep(SUSP * time.Second)
		os.Exit(e)
	}
}

// Timer - report how much time elapsed between A and B
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	// sample output: "[A2: 0.114s][Δ: 0.012s] scenario D: ambiguous quotes"
	d := fmt.Sprintf("[Δ: %.3fs] ", time.Since(previous).Seconds())
	o = fmt.Sprintf("[%s: %.3fs]", letter, time.Since(start).Seconds()) + d + o
	m.Emit(o, TIMETRACKERMSGTHRESH)
}

// LogPaths - increment path counter for this path and report the heap
func (m *MessageMaker) LogPaths(fn string) {
	// sample output: "[AGS] RtTag() current heap: 12M"
	const (
		HEAP = "%s current heap: %s"
	)

	m.mtx.Lock()
	if m.pth == nil {
		m.pth = make(map[string]int)
	}
	m.pth[fn]++
	m.mtx.Unlock()

	if ll, _ := m.level(); ll < MSGPEEK {
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.Emit(fmt.Sprintf(HEAP, fn, fmt.Sprintf("%dM", mem.HeapAlloc/1024/1024)), MSGPEEK)
}

// PathCounts - "RtTag(): 3", etc. sorted by path name
func (m *MessageMaker) PathCounts() []string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	pairs := make([]string, 0, len(m.pth))
	for k, v := range m.pth {
		pairs = append(pairs, fmt.Sprintf("%s: %d", k, v))
	}
	sort.Strings(pairs)
	return pairs
}
