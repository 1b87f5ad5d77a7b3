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

// Package fields is the structured key-value bag attached to every log
// entry: a logger.Clone()'s fields travel independently of its parent's
// once cloned, and both render straight to logrus.Fields at log time.
package fields

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is a thread-safe set of key-value pairs carried on every entry a
// Logger writes.
type Fields interface {
	// Add sets key to val and returns the receiver for chaining.
	Add(key string, val interface{}) Fields
	// Clone returns an independent copy; mutating one does not affect the other.
	Clone() Fields
	// Logrus renders the fields as logrus.Fields for WithFields.
	Logrus() logrus.Fields
}

type fldModel struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

// New returns an empty Fields. ctx is accepted for symmetry with the rest of
// this module's constructors but the fields themselves carry no lifecycle of
// their own.
func New(ctx context.Context) Fields {
	return &fldModel{data: map[string]interface{}{}}
}

func (o *fldModel) Add(key string, val interface{}) Fields {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.data[key] = val
	return o
}

func (o *fldModel) Clone() Fields {
	o.mu.RLock()
	defer o.mu.RUnlock()

	cp := make(map[string]interface{}, len(o.data))
	for k, v := range o.data {
		cp[k] = v
	}

	return &fldModel{data: cp}
}

func (o *fldModel) Logrus() logrus.Fields {
	if o == nil {
		return logrus.Fields{}
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	res := make(logrus.Fields, len(o.data))
	for k, v := range o.data {
		res[k] = v
	}

	return res
}
