/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package session tracks the live state machine of each connected client:
// connected/ready/has-local-checkpoint/current-phase, keyed by participant
// id. The registry is the coordinator's other piece of shared mutable
// state besides the dependency store (see depstore).
package session

import (
	"sync"

	"github.com/behouba/criu-coordinator/phase"
)

// Session is a per-participant snapshot, scoped to one TCP connection.
type Session struct {
	ID                 string
	Connected          bool
	Ready              bool
	HasLocalCheckpoint bool
	CurrentAction      phase.Phase
	generation         uint64
}

// IsReadyFor reports whether this session is live, in phase p, and ready —
// the predicate the barrier engine consults for every declared peer.
func (s Session) IsReadyFor(p phase.Phase) bool {
	return s.Connected && s.Ready && s.CurrentAction == p
}

// Registry keys live sessions by participant id. Multiple connections may
// claim the same id across time (a participant reconnects for the next
// phase); the registry keeps the most recent one as authoritative and
// evicts a closed session before it can shadow a live one.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]*Session
	next uint64
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byID: map[string]*Session{}}
}

// Open creates (or replaces) the session for id, marking it connected with
// no phase yet announced. It returns a handle private to this connection;
// a later call to Open for the same id supersedes it (last-writer-wins).
func (r *Registry) Open(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	s := &Session{ID: id, Connected: true, generation: r.next}
	r.byID[id] = s

	return s
}

// EnterPhase sets s's current phase and marks it ready, per §3.3: "a
// client's current phase is set on its session when it sends its first
// request in that phase." It is a no-op if s has since been superseded by a
// newer session for the same id.
func (r *Registry) EnterPhase(s *Session, p phase.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID[s.ID] != s {
		return
	}

	s.CurrentAction = p
	s.Ready = true
}

// MarkCheckpointed sets has_local_checkpoint, exposed for diagnostics only
// per §4.2; no release rule consults it.
func (r *Registry) MarkCheckpointed(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byID[s.ID] == s {
		s.HasLocalCheckpoint = true
	}
}

// Close marks s disconnected and evicts it from the registry if it is still
// the authoritative session for its id (a superseding Open already removed
// it from the registry's perspective, so this is then a no-op on the map).
func (r *Registry) Close(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.Connected = false
	s.Ready = false

	if r.byID[s.ID] == s {
		delete(r.byID, s.ID)
	}
}

// Snapshot returns a copy of the session currently registered for id, or
// false if none is live.
func (r *Registry) Snapshot(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return Session{}, false
	}

	return *s, true
}
