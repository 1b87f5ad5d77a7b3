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

// Package stream is the pre-stream side pipeline: a UNIX socket the local
// C/R engine writes checkpoint image bytes to, forwarded byte-for-byte to a
// second UNIX socket owned by an external streaming daemon. It does no
// framing, compression or buffering beyond what copying requires.
package stream

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"

	liberr "github.com/behouba/criu-coordinator/errors"

	"github.com/behouba/criu-coordinator/phase"
)

// CapturePath returns the well-known capture socket path inside imagesDir.
func CapturePath(imagesDir string) string {
	return filepath.Join(imagesDir, phase.StreamerCaptureSocketName)
}

// AlreadyCaptured reports whether a capture socket already exists at the
// well-known path inside imagesDir, implementing pre-dump's "streamer mode
// already set up, take precedence" check. It returns an error if the path
// exists but is not a UNIX socket.
func AlreadyCaptured(imagesDir string) (bool, liberr.Error) {
	fi, err := os.Lstat(CapturePath(imagesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, ErrorSocketStat.Error(err)
	}

	if fi.Mode()&os.ModeSocket == 0 {
		return false, ErrorNotASocket.Error(nil)
	}

	return true, nil
}

// Pump listens on the capture socket inside imagesDir and, for each
// connection the local C/R engine makes to it, dials serverSocket and
// forwards bytes in both directions until either side closes. It reuses an
// existing capture socket of the right type; it refuses to overwrite a path
// that exists and is not a socket.
type Pump struct {
	imagesDir    string
	serverSocket string
}

// New builds a Pump that captures into imagesDir and forwards to
// serverSocket, the external streaming daemon's UNIX socket.
func New(imagesDir, serverSocket string) *Pump {
	return &Pump{imagesDir: imagesDir, serverSocket: serverSocket}
}

// Run creates (or reuses) the capture socket and pumps connections until ctx
// is cancelled.
func (p *Pump) Run(ctx context.Context) liberr.Error {
	captured, err := AlreadyCaptured(p.imagesDir)
	if err != nil {
		return err
	}

	path := CapturePath(p.imagesDir)

	// A capture socket left behind by a prior run is stale: nothing still
	// holds its listening end, since that would have exited with the hook
	// process that created it. Remove it and rebind rather than fail, so a
	// retried pre-stream converges instead of wedging on "address in use".
	if captured {
		if rmErr := os.Remove(path); rmErr != nil {
			return ErrorSocketCreate.Error(rmErr)
		}
	} else if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
		return ErrorSocketCreate.Error(mkErr)
	}

	ln, lerr := net.Listen("unix", path)
	if lerr != nil {
		return ErrorSocketCreate.Error(lerr)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, aerr := ln.Accept()
		if aerr != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return ErrorSocketCreate.Error(aerr)
			}
		}

		go p.forward(conn)
	}
}

func (p *Pump) forward(capture net.Conn) {
	defer capture.Close()

	upstream, err := net.Dial("unix", p.serverSocket)
	if err != nil {
		return
	}
	defer upstream.Close()

	done := make(chan struct{}, 2)

	go func() {
		_, _ = io.Copy(upstream, capture)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(capture, upstream)
		done <- struct{}{}
	}()

	<-done
}
