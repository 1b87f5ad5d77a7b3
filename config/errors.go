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

import "github.com/behouba/criu-coordinator/errors"

const (
	ErrorNoConfigFile errors.CodeError = iota + errors.MinErrConfig
	ErrorParse
	ErrorMissingInitPID
	ErrorContainerIDNotFound
	ErrorPerCheckpointMissing
	ErrorPerCheckpointWrite
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorNoConfigFile)
	errors.RegisterIdFctMessage(ErrorNoConfigFile, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorNoConfigFile:
		return "no per-checkpoint or global configuration file found"
	case ErrorParse:
		return "configuration file could not be parsed in either known shape"
	case ErrorMissingInitPID:
		return "CRTOOLS_INIT_PID is required for container identity discovery but was not set"
	case ErrorContainerIDNotFound:
		return "no container id could be derived from the process cgroup"
	case ErrorPerCheckpointMissing:
		return "restore side requires a per-checkpoint config file that was not found"
	case ErrorPerCheckpointWrite:
		return "failed to write the per-checkpoint configuration file"
	}

	return ""
}
