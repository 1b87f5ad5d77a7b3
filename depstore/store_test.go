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

package depstore_test

import (
	"testing"

	"github.com/behouba/criu-coordinator/depstore"
)

func TestExactMatch(t *testing.T) {
	s := depstore.New()
	s.Put("A", []string{"B"})

	deps, ok := s.DepsOf("A")
	if !ok || len(deps) != 1 || deps[0] != "B" {
		t.Fatalf("unexpected deps: %v ok=%v", deps, ok)
	}
}

func TestPutIsIdempotent(t *testing.T) {
	s := depstore.New()
	s.Put("A", []string{"B"})
	s.Put("A", []string{"B"})

	deps, _ := s.DepsOf("A")
	if len(deps) != 1 {
		t.Fatalf("expected a single B entry, got %v", deps)
	}
}

func TestEmptyDependencyListIsLegal(t *testing.T) {
	s := depstore.New()
	s.Put("A", nil)

	deps, ok := s.DepsOf("A")
	if !ok || len(deps) != 0 {
		t.Fatalf("expected an explicit empty list, got %v ok=%v", deps, ok)
	}
}

func TestPrefixLookupPicksLongestMatch(t *testing.T) {
	s := depstore.New()
	s.Put("abc", []string{"short"})
	s.Put("abcdef", []string{"long"})

	deps, ok := s.DepsOf("abcdef123456")
	if !ok || len(deps) != 1 || deps[0] != "long" {
		t.Fatalf("expected longest prefix match, got %v ok=%v", deps, ok)
	}

	s2 := depstore.New()
	s2.PutGraph(map[string][]string{"bbb": {"z"}, "aaa": {"y"}})
	deps2, ok2 := s2.DepsOf("zzzzzz")
	if ok2 {
		t.Fatalf("expected no match for unrelated id, got %v", deps2)
	}
}

func TestPrefixLookupMissReturnsFalse(t *testing.T) {
	s := depstore.New()
	s.Put("abc", []string{"x"})

	if _, ok := s.DepsOf("xyz"); ok {
		t.Fatal("expected no match")
	}
}
