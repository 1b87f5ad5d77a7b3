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

// Package hook is the short-lived client side of the protocol: recognize
// the phase the local C/R engine invoked it for, perform any side effect
// that must happen before the barrier RPC, then dial the coordinator,
// announce, and wait.
package hook

import (
	"net"
	"os"
	"os/exec"
	"syscall"

	liberr "github.com/behouba/criu-coordinator/errors"

	"github.com/behouba/criu-coordinator/netaction"
	"github.com/behouba/criu-coordinator/phase"
	"github.com/behouba/criu-coordinator/stream"
	"github.com/behouba/criu-coordinator/wire"
)

// StreamPumpArg is the hidden subcommand cmd/criu-coordinator recognizes to
// re-exec itself as a detached streaming pipeline (see spawnStreamPump).
const StreamPumpArg = "__stream-pump"

// Request describes one hook invocation, assembled from the environment and
// the resolved configuration.
type Request struct {
	Address      string
	Port         string
	ID           string
	Dependencies []string
	Action       phase.Phase
	ImagesDir    string
	InitPID      int
	StreamSocket string
}

// Outcome is what the caller (cmd/criu-coordinator) needs to decide its
// process exit code.
type Outcome struct {
	// Skipped is true when the phase required no coordinator round trip
	// (an unrecognized action, or pre-dump deferring to an already-running
	// streamer) — success without ever dialing.
	Skipped bool
}

// Run executes the full phase-handling logic of §4.4 for req and returns
// once the phase either completed or was skipped. A non-nil error means the
// hook must exit nonzero.
func Run(req Request) (Outcome, liberr.Error) {
	if !req.Action.IsKnown() {
		return Outcome{Skipped: true}, nil
	}

	if req.Action == phase.PreDump {
		already, err := stream.AlreadyCaptured(req.ImagesDir)
		if err != nil {
			return Outcome{}, err
		}
		if already {
			return Outcome{Skipped: true}, nil
		}
	}

	if req.Action == phase.NetworkLock || req.Action == phase.NetworkUnlock {
		up := req.Action == phase.NetworkUnlock
		if err := netaction.Toggle(req.InitPID, up); err != nil {
			return Outcome{}, err
		}
	}

	if err := barrierRPC(req); err != nil {
		return Outcome{}, err
	}

	if req.Action == phase.PreStream && req.StreamSocket != "" {
		if err := spawnStreamPump(req.ImagesDir, req.StreamSocket); err != nil {
			return Outcome{}, err
		}
	}

	return Outcome{}, nil
}

// spawnStreamPump re-execs the current binary as a detached process running
// the streaming pipeline (§4.6), so it survives past this hook's own exit —
// a goroutine would not, since the hook process exits immediately after
// Run returns. The child is session-leader'd and has no inherited stdio.
func spawnStreamPump(imagesDir, streamSocket string) liberr.Error {
	self, err := os.Executable()
	if err != nil {
		return ErrorDial.Error(err)
	}

	cmd := exec.Command(self, StreamPumpArg, imagesDir, streamSocket)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return ErrorDial.Error(err)
	}

	return nil
}

func barrierRPC(req Request) liberr.Error {
	conn, err := net.Dial("tcp", net.JoinHostPort(req.Address, req.Port))
	if err != nil {
		return ErrorDial.Error(err)
	}
	defer conn.Close()

	wireReq := wire.NewDependencyRequest(req.ID, req.Action.String(), req.Dependencies)
	if werr := wire.NewEncoder(conn).WriteRequest(wireReq); werr != nil {
		return ErrorWrite.Error(werr)
	}

	resp, rerr := wire.NewDecoder(conn).ReadResponse()
	if rerr != nil {
		return ErrorRead.Error(rerr)
	}

	if !resp.IsOK() {
		return ErrorCoordinatorRejected.Error(nil)
	}

	return nil
}
