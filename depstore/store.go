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

// Package depstore holds the coordinator's only persistent-for-the-process
// piece of shared state: the declared dependency graph. Entries are never
// removed once added; the process-wide instance lives for the lifetime of
// the coordinator.
package depstore

import "sync"

// Store maps a participant id to the ordered list of peer ids it must
// rendezvous with at every phase.
type Store struct {
	mu   sync.RWMutex
	deps map[string][]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{deps: map[string][]string{}}
}

// Put records deps for id, overwriting any prior entry. Put is idempotent:
// re-putting the same graph has no observable effect on DepsOf.
func (s *Store) Put(id string, deps []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deps[id] = append([]string(nil), deps...)
}

// PutGraph merges a whole id->deps map in one critical section, as used by
// an add-dependencies upload.
func (s *Store) PutGraph(graph map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, deps := range graph {
		s.deps[id] = append([]string(nil), deps...)
	}
}

// DepsOf returns the dependency list declared for id. It tries an exact
// match first; failing that it falls back to prefix lookup: the longest key
// k such that id starts with k, breaking ties lexicographically. A miss
// returns (nil, false) and is not an error by itself — an id with no
// declared dependencies synchronizes with no one.
func (s *Store) DepsOf(id string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if deps, ok := s.deps[id]; ok {
		return deps, true
	}

	bestKey := ""
	found := false

	for k := range s.deps {
		if k == "" || !hasPrefix(id, k) {
			continue
		}

		switch {
		case !found:
			bestKey, found = k, true
		case len(k) > len(bestKey):
			bestKey = k
		case len(k) == len(bestKey) && k < bestKey:
			bestKey = k
		}
	}

	if !found {
		return nil, false
	}

	return s.deps[bestKey], true
}

func hasPrefix(id, prefix string) bool {
	return len(id) >= len(prefix) && id[:len(prefix)] == prefix
}
