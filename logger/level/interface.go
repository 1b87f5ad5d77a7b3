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

// Package level is the severity scale logger filters and tags entries with.
package level

import "strings"

// Level is a logging severity, ordered from most (PanicLevel) to least
// (DebugLevel) severe. NilLevel is a sentinel used by CheckError to mean
// "don't log the success case".
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	NilLevel
)

// Parse is case-insensitive and accepts either the full name or the short
// code; anything else resolves to InfoLevel.
func Parse(l string) Level {
	switch {
	case strings.EqualFold(PanicLevel.String(), l), strings.EqualFold(PanicLevel.Code(), l):
		return PanicLevel
	case strings.EqualFold(FatalLevel.String(), l), strings.EqualFold(FatalLevel.Code(), l):
		return FatalLevel
	case strings.EqualFold(ErrorLevel.String(), l), strings.EqualFold(ErrorLevel.Code(), l):
		return ErrorLevel
	case strings.EqualFold(WarnLevel.String(), l), strings.EqualFold(WarnLevel.Code(), l):
		return WarnLevel
	case strings.EqualFold(InfoLevel.String(), l), strings.EqualFold(InfoLevel.Code(), l):
		return InfoLevel
	case strings.EqualFold(DebugLevel.String(), l), strings.EqualFold(DebugLevel.Code(), l):
		return DebugLevel
	}

	return InfoLevel
}
