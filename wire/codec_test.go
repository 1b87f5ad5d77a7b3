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

package wire_test

import (
	"bytes"
	"testing"

	"github.com/behouba/criu-coordinator/wire"
)

func TestRequestRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	req := wire.NewDependencyRequest("A", "pre-dump", []string{"B", "C"})

	if err := wire.NewEncoder(buf).WriteRequest(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	got, err := wire.NewDecoder(buf).ReadRequest()
	if err != nil {
		t.Fatalf("read request: %v", err)
	}

	if got.ID != "A" || got.Action != "pre-dump" {
		t.Fatalf("unexpected request: %+v", got)
	}

	deps := got.DependencyList()
	if len(deps) != 2 || deps[0] != "B" || deps[1] != "C" {
		t.Fatalf("unexpected dependency list: %v", deps)
	}
}

func TestGraphRequestRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	req := wire.NewGraphRequest(map[string][]string{"X": {"Y"}, "Y": {"X"}})

	if err := wire.NewEncoder(buf).WriteRequest(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	got, err := wire.NewDecoder(buf).ReadRequest()
	if err != nil {
		t.Fatalf("read request: %v", err)
	}

	graph, ok := got.DependencyGraph()
	if !ok {
		t.Fatal("expected a dependency graph")
	}
	if len(graph["X"]) != 1 || graph["X"][0] != "Y" {
		t.Fatalf("unexpected graph: %v", graph)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := wire.NewEncoder(buf).WriteResponse(wire.Err("timeout")); err != nil {
		t.Fatalf("write response: %v", err)
	}

	got, err := wire.NewDecoder(buf).ReadResponse()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	if got.IsOK() || got.Reason != "timeout" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestSplitDepsDropsEmptyEntries(t *testing.T) {
	deps := wire.SplitDeps("a::b:")
	if len(deps) != 2 || deps[0] != "a" || deps[1] != "b" {
		t.Fatalf("unexpected split: %v", deps)
	}
}
