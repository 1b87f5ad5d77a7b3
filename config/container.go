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

package config

import (
	"fmt"
	"os"
	"strings"

	liberr "github.com/behouba/criu-coordinator/errors"
)

// containerIDLength is the length of a full (undertruncated) container
// engine ID, as it appears inside a cgroup path component.
const containerIDLength = 64

// ContainerIDFromPID recovers a container id from the cgroup membership of
// pid, used when the central config declares dependencies by id-prefix
// instead of by pid. It scans /proc/<pid>/cgroup for a run of exactly
// containerIDLength lowercase hex characters that is not itself a
// substring of a longer hex run, and returns the last such run found (the
// innermost cgroup scope is usually the most specific).
func ContainerIDFromPID(pid int) (string, liberr.Error) {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/cgroup", pid))
	if err != nil {
		return "", ErrorContainerIDNotFound.Error(err)
	}

	id, ok := findHexRun(string(raw), containerIDLength)
	if !ok {
		return "", ErrorContainerIDNotFound.Error(nil)
	}

	return id, nil
}

// findHexRun returns the last run of exactly n consecutive lowercase hex
// characters in s, bounded on both sides by a non-hex character (or string
// edge) so that it never returns a substring of a longer run.
func findHexRun(s string, n int) (string, bool) {
	found := ""
	ok := false

	for i := 0; i+n <= len(s); i++ {
		if !isHexRun(s[i : i+n]) {
			continue
		}
		if i > 0 && isHexChar(s[i-1]) {
			continue
		}
		if i+n < len(s) && isHexChar(s[i+n]) {
			continue
		}

		found, ok = s[i:i+n], true
	}

	return found, ok
}

func isHexRun(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return false
		}
	}
	return true
}

func isHexChar(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// DependenciesByPrefix looks up deps for discoveredID in a central
// dependency map keyed by id-prefix, per §6.3's structured config shape.
// It returns the deps of a key that discoveredID starts with; the map is
// walked in Go's unspecified iteration order, so when several keys match,
// which one is returned is not defined. depstore.Store implements the
// deterministic longest-then-lexicographic rule instead. This helper is
// used while resolving a single config file at hook start-up, before any
// entry has reached the coordinator's store.
func DependenciesByPrefix(central map[string][]string, discoveredID string) ([]string, bool) {
	for prefix, deps := range central {
		if strings.HasPrefix(discoveredID, prefix) {
			return deps, true
		}
	}

	return nil, false
}
