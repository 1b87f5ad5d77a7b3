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

package hook

import "github.com/behouba/criu-coordinator/errors"

// The hook shares the network-error category with netaction but needs its
// own sub-range within it so the two packages' getMessage functions don't
// shadow each other; netaction only uses codes MinErrNetwork..+3.
const (
	ErrorDial errors.CodeError = iota + errors.MinErrNetwork + 50
	ErrorWrite
	ErrorRead
	ErrorCoordinatorRejected
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorDial)
	errors.RegisterIdFctMessage(ErrorDial, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorDial:
		return "failed to connect to the coordinator"
	case ErrorWrite:
		return "failed to send the barrier request"
	case ErrorRead:
		return "failed to read the coordinator's response"
	case ErrorCoordinatorRejected:
		return "coordinator returned an error response"
	}

	return ""
}
