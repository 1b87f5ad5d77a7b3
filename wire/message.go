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

// Package wire implements the newline-delimited JSON framing exchanged
// between a hook and the coordinator: one request, one response, then the
// connection closes. No multiplexing.
package wire

import (
	"encoding/json"
	"strings"
)

// StatusOK and StatusError are the two values of Response.Status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is the single object a hook sends on connect. Dependencies carries
// either a colon-separated peer list (phase requests) or a JSON object
// mapping id to dependency list (an add-dependencies upload).
type Request struct {
	ID           string          `json:"id"`
	Action       string          `json:"action"`
	Dependencies json.RawMessage `json:"dependencies,omitempty"`
}

// Response is the single object the coordinator writes before closing.
type Response struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// OK builds a success response.
func OK() Response {
	return Response{Status: StatusOK}
}

// Err builds an error response carrying reason.
func Err(reason string) Response {
	return Response{Status: StatusError, Reason: reason}
}

// IsOK reports whether the response indicates success.
func (r Response) IsOK() bool {
	return r.Status == StatusOK
}

// DependencyList parses Dependencies as a colon-separated peer list, the
// shape used by phase-entry requests.
func (r Request) DependencyList() []string {
	if len(r.Dependencies) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(r.Dependencies, &s); err != nil {
		return nil
	}

	return SplitDeps(s)
}

// DependencyGraph parses Dependencies as an id-to-deps map, the shape used
// by add-dependencies uploads.
func (r Request) DependencyGraph() (map[string][]string, bool) {
	if len(r.Dependencies) == 0 {
		return nil, false
	}

	g := map[string][]string{}
	if err := json.Unmarshal(r.Dependencies, &g); err != nil {
		return nil, false
	}

	return g, true
}

// SplitDeps splits a colon-separated dependency list, dropping empty entries
// so that "" and "a::b" both behave sanely.
func SplitDeps(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ":")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

// JoinDeps is the inverse of SplitDeps, used when persisting a per-checkpoint
// config or building a phase-entry request.
func JoinDeps(deps []string) string {
	return strings.Join(deps, ":")
}

// NewDependencyRequest builds a phase-entry request announcing id's declared
// dependency list for the given action.
func NewDependencyRequest(id, action string, deps []string) Request {
	raw, _ := json.Marshal(JoinDeps(deps))
	return Request{ID: id, Action: action, Dependencies: raw}
}

// NewGraphRequest builds an add-dependencies upload request.
func NewGraphRequest(graph map[string][]string) Request {
	raw, _ := json.Marshal(graph)
	return Request{ID: "", Action: "add-dependencies", Dependencies: raw}
}
