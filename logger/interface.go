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

// Package logger is a structured logger built on logrus, trimmed to what
// this coordinator needs: level-based filtering, a single writable sink
// (stderr or a log file), and structured fields carried across log calls.
package logger

import (
	"context"
	"io"

	libfld "github.com/behouba/criu-coordinator/logger/fields"
	loglvl "github.com/behouba/criu-coordinator/logger/level"
)

// Logger is the façade used by the rest of this module for diagnostics.
type Logger interface {
	io.WriteCloser

	// SetLevel sets the minimum severity that will be emitted.
	SetLevel(lvl loglvl.Level)
	// GetLevel returns the current minimum severity.
	GetLevel() loglvl.Level

	// SetOutput redirects the log sink (defaults to os.Stderr).
	SetOutput(w io.Writer)

	// SetFields replaces the structured fields attached to every entry.
	SetFields(f libfld.Fields)
	// GetFields returns the structured fields attached to every entry.
	GetFields() libfld.Fields

	// Clone returns an independent logger sharing the same output and level,
	// with its own copy of the fields so callers may enrich them.
	Clone() Logger

	Debug(message string, data interface{}, args ...interface{})
	Info(message string, data interface{}, args ...interface{})
	Warning(message string, data interface{}, args ...interface{})
	Error(message string, data interface{}, args ...interface{})
	Fatal(message string, data interface{}, args ...interface{})

	// CheckError logs e at errLevel if non-nil, at okLevel otherwise, and
	// returns true when an error was logged.
	CheckError(errLevel, okLevel loglvl.Level, message string, e error) bool
}

// New returns a Logger writing to os.Stderr at InfoLevel.
func New(ctx context.Context) Logger {
	return newLogger(ctx)
}
