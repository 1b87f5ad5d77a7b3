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

// Package coordsrv is the coordinator side of the protocol: a TCP listener
// that accepts one connection per request, dispatches it against the
// dependency store, session registry and barrier engine, and writes back a
// single status response before the connection closes.
package coordsrv

import (
	"context"
	"net"
	"sync"

	liblog "github.com/behouba/criu-coordinator/logger"
	loglvl "github.com/behouba/criu-coordinator/logger/level"

	"github.com/behouba/criu-coordinator/barrier"
	"github.com/behouba/criu-coordinator/depstore"
	"github.com/behouba/criu-coordinator/phase"
	"github.com/behouba/criu-coordinator/session"
	"github.com/behouba/criu-coordinator/wire"
)

// Server accepts hook connections and serves the barrier protocol over them.
type Server struct {
	deps     *depstore.Store
	sessions *session.Registry
	gate     *barrier.Engine
	log      liblog.Logger

	mu sync.Mutex
	ln net.Listener
}

// New builds a Server with its own dependency store, session registry and
// barrier engine. log may be nil, in which case a background logger is used.
func New(log liblog.Logger) *Server {
	deps := depstore.New()
	sessions := session.NewRegistry()

	if log == nil {
		log = liblog.New(context.Background())
	}

	return &Server{
		deps:     deps,
		sessions: sessions,
		gate:     barrier.New(deps, sessions),
		log:      log,
	}
}

// SetMaxRetries forwards to the barrier engine's retry budget.
func (s *Server) SetMaxRetries(n int) {
	s.gate.SetMaxRetries(n)
}

// Serve listens on addr and blocks, accepting connections until ctx is
// cancelled or the listener errors out. Each accepted connection is handled
// on its own goroutine.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return ErrorListen.Error(err)
	}

	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	s.log.Info("listening for hook connections on %s", nil, addr)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, aerr := ln.Accept()
		if aerr != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return ErrorListen.Error(aerr)
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

// Addr returns the address the listener is bound to, or nil before Serve has
// been called (or after it has returned).
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	dec := wire.NewDecoder(conn)
	enc := wire.NewEncoder(conn)

	req, err := dec.ReadRequest()
	if err != nil {
		s.log.Debug("failed to read request", err)
		return
	}

	resp := s.dispatch(ctx, req)
	if werr := enc.WriteResponse(resp); werr != nil {
		s.log.Debug("failed to write response", werr)
	}
}

func (s *Server) dispatch(ctx context.Context, req wire.Request) wire.Response {
	if req.Action == phase.AddDependencies {
		graph, ok := req.DependencyGraph()
		if !ok {
			return wire.Err(ErrorMalformedRequest.Error(nil).Error())
		}

		s.deps.PutGraph(graph)
		return wire.OK()
	}

	if req.ID == "" {
		return wire.Err(ErrorMissingID.Error(nil).Error())
	}

	p := phase.Phase(req.Action)
	if !p.IsKnown() {
		return wire.Err(ErrorUnknownAction.Error(nil).Error())
	}

	if deps := req.DependencyList(); len(deps) > 0 {
		s.deps.Put(req.ID, deps)
	}

	// The session is deliberately left live in the registry once this
	// request completes: other participants may still be polling for it
	// to report ready in this same phase, and a later Open for this id
	// (the next phase) supersedes it per the registry's last-writer-wins
	// rule. There is no explicit disconnect signal in this protocol — one
	// connection carries exactly one request/response — so eviction only
	// ever happens by supersession.
	sess := s.sessions.Open(req.ID)
	s.sessions.EnterPhase(sess, p)

	if err := s.gate.Wait(ctx, req.ID, p); err != nil {
		s.log.CheckError(loglvl.WarnLevel, loglvl.NilLevel, "barrier wait failed for "+req.ID, err)
		return wire.Err(err.Error())
	}

	// post-dump release means this participant has completed its own local
	// checkpoint step at least once (§4.2); no release rule consults the
	// flag, it exists for diagnostics only.
	if p == phase.PostDump {
		s.sessions.MarkCheckpointed(sess)
	}

	return wire.OK()
}
