//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"sync"

	"github.com/e-gun/AyracGoServer/internal/lnch"
	"github.com/e-gun/AyracGoServer/internal/str"
)

//
// THREAD SAFE INFRASTRUCTURE: MUTEX
//

// MakeSessionVault - called only once; yields the AllSessions vault
func MakeSessionVault() *SessionVault {
	return &SessionVault{
		SessionMap: make(map[string]str.ServerSession),
		mutex:      sync.RWMutex{},
	}
}

// SessionVault - there should be only one of these; and it contains all the sessions
type SessionVault struct {
	SessionMap map[string]str.ServerSession
	mutex      sync.RWMutex
}

func (sv *SessionVault) InsertSess(s str.ServerSession) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	sv.SessionMap[s.ID] = s
}

func (sv *SessionVault) Delete(id string) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	delete(sv.SessionMap, id)
}

func (sv *SessionVault) IsInVault(id string) bool {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	_, b := sv.SessionMap[id]
	return b
}

func (sv *SessionVault) GetSess(id string) str.ServerSession {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	s, ok := sv.SessionMap[id]
	if !ok {
		s = lnch.MakeDefaultSession(id)
	}
	return s
}

// UpdateSess - read-modify-write a session under one lock
func (sv *SessionVault) UpdateSess(id string, fn func(s *str.ServerSession)) str.ServerSession {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	s, ok := sv.SessionMap[id]
	if !ok {
		s = lnch.MakeDefaultSession(id)
	}
	fn(&s)
	sv.SessionMap[id] = s
	return s
}

// Supersede - register seq as the newest request of this session; false if a newer one already arrived
func (sv *SessionVault) Supersede(id string, seq int64) bool {
	// seq <= 0: the client does not number its requests; nothing can be judged stale
	ok := true
	sv.UpdateSess(id, func(s *str.ServerSession) {
		s.Requests++
		if seq <= 0 {
			return
		}
		if seq <= s.LatestSeq {
			ok = false
			return
		}
		s.LatestSeq = seq
	})
	return ok
}

// IsLatest - is seq still the newest request of this session?
func (sv *SessionVault) IsLatest(id string, seq int64) bool {
	if seq <= 0 {
		return true
	}
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	return sv.SessionMap[id].LatestSeq == seq
}

// Count - how many sessions are live
func (sv *SessionVault) Count() int {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	return len(sv.SessionMap)
}
