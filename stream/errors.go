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

package stream

import "github.com/behouba/criu-coordinator/errors"

const (
	ErrorSocketExists errors.CodeError = iota + errors.MinErrStreamer
	ErrorSocketCreate
	ErrorSocketStat
	ErrorNotASocket
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorSocketExists)
	errors.RegisterIdFctMessage(ErrorSocketExists, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorSocketExists:
		return "streamer capture socket already exists and streaming is already set up"
	case ErrorSocketCreate:
		return "failed to create the streamer capture socket"
	case ErrorSocketStat:
		return "failed to stat the streamer capture socket path"
	case ErrorNotASocket:
		return "path exists but is not a UNIX socket"
	}

	return ""
}
