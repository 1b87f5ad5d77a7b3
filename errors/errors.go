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

// Package errors is the coordinator's error taxonomy: every domain package
// declares a small block of CodeError constants offset from one of the
// floors in modules.go, registers a message function for that floor, and
// builds values with CodeError.Error. There is no HTTP rendering, no
// resumable-trace machinery and no parent-matching beyond what Add/IsCode
// need — this engine only has to carry a numeric code, a message and an
// optional wrapped cause through a single RPC round trip.
package errors

import (
	"fmt"
	"sync"
)

// CodeError is a numeric error code. Packages offset their own constants
// from a Min* floor declared in modules.go so two packages' codes never
// collide.
type CodeError uint16

// Error is the value a CodeError produces once it has been raised.
type Error interface {
	error

	// Add attaches additional causes to this error.
	Add(parent ...error)
	// IsCode reports whether this error, or one of its causes, carries code.
	IsCode(code CodeError) bool
}

type codeErr struct {
	code   CodeError
	parent []error
}

// Error builds an Error for c, wrapping parent if it is non-nil.
func (c CodeError) Error(parent error) Error {
	e := &codeErr{code: c}
	if parent != nil {
		e.parent = append(e.parent, parent)
	}

	return e
}

func (e *codeErr) Error() string {
	msg := messageFor(e.code)
	if msg == "" {
		msg = "unregistered error"
	}

	s := fmt.Sprintf("[%d] %s", uint16(e.code), msg)
	for _, p := range e.parent {
		if p != nil {
			s += ": " + p.Error()
		}
	}

	return s
}

func (e *codeErr) Add(parent ...error) {
	for _, p := range parent {
		if p != nil {
			e.parent = append(e.parent, p)
		}
	}
}

func (e *codeErr) IsCode(code CodeError) bool {
	if e.code == code {
		return true
	}

	for _, p := range e.parent {
		if pe, ok := p.(Error); ok && pe.IsCode(code) {
			return true
		}
	}

	return false
}

var (
	registryMu sync.RWMutex
	registry   = map[CodeError]func(CodeError) string{}
)

// RegisterIdFctMessage registers fct as the message source for every code at
// or above floor, up to the next registered floor. Each package calls this
// once from its init with the lowest constant it declared.
func RegisterIdFctMessage(floor CodeError, fct func(CodeError) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[floor] = fct
}

// ExistInMapMessage reports whether the message function registered for
// code's floor already yields a message for code, so a package's init can
// avoid clobbering a registration made by an earlier import of the same
// package.
func ExistInMapMessage(code CodeError) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	fct, ok := registry[floorFor(code)]
	return ok && fct(code) != ""
}

func messageFor(code CodeError) string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	fct, ok := registry[floorFor(code)]
	if !ok {
		return ""
	}

	return fct(code)
}

// floorFor returns the largest registered floor not exceeding code. Callers
// must hold registryMu.
func floorFor(code CodeError) CodeError {
	var (
		best  CodeError
		found bool
	)

	for floor := range registry {
		if floor <= code && (!found || floor > best) {
			best = floor
			found = true
		}
	}

	return best
}
