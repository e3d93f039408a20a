//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/e-gun/AyracGoServer/internal/str"
	"github.com/e-gun/AyracGoServer/internal/vv"
	"github.com/fsnotify/fsnotify"
)

//
// HOT RELOAD
//

// only LogLevel and TooltipOffset change while running; everything else needs a restart

var tipoffset atomic.Int64

func init() {
	tipoffset.Store(vv.TOOLTIPOFFSET)
}

func SetTooltipOffset(o int) {
	tipoffset.Store(int64(o))
}

// TooltipOffset - the offset new sessions and offset-less placement requests use
func TooltipOffset() int {
	return int(tipoffset.Load())
}

// ApplyHotReload - push the reloadable fields of a freshly read file into the running server
func ApplyHotReload(fresh str.CurrentConfiguration) {
	const (
		RELD = "configuration reloaded: gl=%d; tooltip offset=%d"
	)
	Msg.SetLevel(fresh.LogLevel)
	SetTooltipOffset(fresh.TooltipOffset)
	Msg.NOTE(fmt.Sprintf(RELD, fresh.LogLevel, fresh.TooltipOffset))
}

// WatchConfigFile - reread path whenever it is written; apply() sees the defaults, then the file, then args
func WatchConfigFile(ctx context.Context, path string, args []string, apply func(str.CurrentConfiguration)) error {
	const (
		DEBOUNCE = 100 * time.Millisecond
		FAIL     = "WatchConfigFile() could not reload '%s': %s"
		WERR     = "WatchConfigFile() watcher error: %s"
	)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// editors often replace the file rather than write to it; so watch the directory
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	reload := func() {
		c := BuildDefaultConfig()
		if lerr := LoadConfigFile(path, c); lerr != nil {
			Msg.WARN(fmt.Sprintf(FAIL, path, lerr))
			return
		}
		// the command line still outranks the file
		if aerr := ApplyArgs(c, args); aerr != nil {
			Msg.WARN(fmt.Sprintf(FAIL, path, aerr))
			return
		}
		apply(*c)
	}

	go func() {
		defer watcher.Close()
		var debounce *time.Timer
		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(DEBOUNCE, reload)
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				Msg.WARN(fmt.Sprintf(WERR, werr))
			}
		}
	}()
	return nil
}
