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

// Package barrier implements the coordinator's rendezvous: a participant is
// released for a phase only once every peer it declared a dependency on has
// reached that same phase and announced readiness. It consults depstore for
// the "who" and session for the "are they there yet", and owns only the
// polling/timeout discipline layered on top of those two.
package barrier

import (
	"context"
	"fmt"
	"time"

	liberr "github.com/behouba/criu-coordinator/errors"

	"github.com/behouba/criu-coordinator/depstore"
	"github.com/behouba/criu-coordinator/phase"
	"github.com/behouba/criu-coordinator/session"
)

// DefaultPollInterval is how often the engine re-samples peer readiness
// while a client is blocked waiting to be released for a phase.
const DefaultPollInterval = 100 * time.Millisecond

// DefaultMaxRetries bounds how many samples are taken before a wait gives up.
const DefaultMaxRetries = 50

// Engine evaluates the release rule for one coordinator instance. It holds
// no state of its own beyond its collaborators and is safe for concurrent
// use by every connection handler.
type Engine struct {
	deps     *depstore.Store
	sessions *session.Registry

	pollInterval time.Duration
	maxRetries   int
}

// New returns an Engine wired to deps and sessions, using the default
// polling discipline.
func New(deps *depstore.Store, sessions *session.Registry) *Engine {
	return &Engine{
		deps:         deps,
		sessions:     sessions,
		pollInterval: DefaultPollInterval,
		maxRetries:   DefaultMaxRetries,
	}
}

// SetPollInterval overrides the sleep between samples.
func (e *Engine) SetPollInterval(d time.Duration) {
	if d > 0 {
		e.pollInterval = d
	}
}

// SetMaxRetries overrides the bounded number of samples taken before a wait
// times out.
func (e *Engine) SetMaxRetries(n int) {
	if n > 0 {
		e.maxRetries = n
	}
}

// Ready reports whether every peer id declares as a dependency is currently
// a live session in phase p with ready=true. An id with no declared
// dependencies is always ready: it synchronizes with no one.
func (e *Engine) Ready(id string, p phase.Phase) (bool, []string) {
	deps, _ := e.deps.DepsOf(id)
	if len(deps) == 0 {
		return true, nil
	}

	pending := make([]string, 0, len(deps))
	for _, peer := range deps {
		snap, ok := e.sessions.Snapshot(peer)
		if !ok || !snap.IsReadyFor(p) {
			pending = append(pending, peer)
		}
	}

	return len(pending) == 0, pending
}

// Wait blocks the caller until id is released for phase p, the bounded
// retry budget is exhausted, or ctx is cancelled. It samples Ready on the
// configured poll interval; per §4.2's liveness rule, a peer that was never
// observed ready within the retry budget is reported as the (or a) reason
// for the timeout, whether it disconnected mid-wait or never connected at
// all — the engine does not distinguish the two once the budget runs out.
func (e *Engine) Wait(ctx context.Context, id string, p phase.Phase) liberr.Error {
	if ready, _ := e.Ready(id, p); ready {
		return nil
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	var pending []string

	for attempt := 0; attempt < e.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ErrorTimeout.Error(ctx.Err())
		case <-ticker.C:
		}

		var ready bool
		ready, pending = e.Ready(id, p)
		if ready {
			return nil
		}
	}

	err := ErrorTimeout.Error(nil)
	for _, peer := range pending {
		err.Add(ErrorPeerGone.Error(fmt.Errorf("peer %q never reached %s ready", peer, p)))
	}

	return err
}
