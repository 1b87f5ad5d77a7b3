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

// Package phase holds the closed vocabulary shared by the hook and the
// coordinator: phase names, the environment variables the local C/R engine
// sets before spawning the hook, and the well-known file names the two
// sides agree on inside an images directory.
package phase

// Phase is one step of the checkpoint/restore lifecycle, as named by the
// local C/R engine when it invokes the hook.
type Phase string

const (
	PreDump       Phase = "pre-dump"
	PostDump      Phase = "post-dump"
	PreStream     Phase = "pre-stream"
	NetworkLock   Phase = "network-lock"
	NetworkUnlock Phase = "network-unlock"
	PreRestore    Phase = "pre-restore"
	PostRestore   Phase = "post-restore"
	PostResume    Phase = "post-resume"
)

// AddDependencies is not a phase but shares the action field of the wire
// protocol: it uploads a dependency graph instead of entering a barrier.
const AddDependencies = "add-dependencies"

// dumpSide and restoreSide partition the closed set of phases per §3.3.
var dumpSide = map[Phase]bool{
	PreDump:     true,
	PostDump:    true,
	NetworkLock: true,
	PreStream:   true,
}

var restoreSide = map[Phase]bool{
	PreRestore:    true,
	PostRestore:   true,
	PostResume:    true,
	NetworkUnlock: true,
}

// IsDumpSide reports whether p is one of the dump-side phases.
func (p Phase) IsDumpSide() bool {
	return dumpSide[p]
}

// IsRestoreSide reports whether p is one of the restore-side phases.
func (p Phase) IsRestoreSide() bool {
	return restoreSide[p]
}

// IsKnown reports whether p belongs to the closed phase vocabulary.
func (p Phase) IsKnown() bool {
	return dumpSide[p] || restoreSide[p]
}

func (p Phase) String() string {
	return string(p)
}

// Environment variables the local C/R engine sets before spawning the hook.
const (
	// EnvAction carries the phase name and switches the binary into hook mode.
	EnvAction = "CRTOOLS_SCRIPT_ACTION"
	// EnvImageDir carries the path to the images directory.
	EnvImageDir = "CRTOOLS_IMAGE_DIR"
	// EnvInitPID carries the numeric PID of the container init process.
	EnvInitPID = "CRTOOLS_INIT_PID"
)

// Well-known file names inside an images directory.
const (
	// ConfigFile is the per-checkpoint configuration written by the dump
	// side and read back by the restore side.
	ConfigFile = "criu-coordinator.json"
	// StreamerCaptureSocketName is the UNIX socket the local C/R engine
	// writes checkpoint image bytes to during pre-stream.
	StreamerCaptureSocketName = "streamer-capture.sock"
)

// GlobalConfigDir is the well-known global configuration location. The dump
// side resolves identity from it when no local config carries an id; the
// restore side and the server read address, port and log file from it.
const GlobalConfigDir = "/etc/criu"

// Defaults for the coordinator address, as used when a config file omits them.
const (
	DefaultAddress = "127.0.0.1"
	DefaultPort    = "3260"
)
