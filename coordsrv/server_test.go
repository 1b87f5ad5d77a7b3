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

package coordsrv_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/behouba/criu-coordinator/coordsrv"
	"github.com/behouba/criu-coordinator/wire"
)

func startServer(t *testing.T) (*coordsrv.Server, func()) {
	t.Helper()

	s := coordsrv.New(nil)
	s.SetMaxRetries(5)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.Serve(ctx, "127.0.0.1:0")
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if s.Addr() == nil {
		t.Fatal("server never bound a listener")
	}

	return s, func() {
		cancel()
		<-errCh
	}
}

func roundTrip(t *testing.T, addr string, req wire.Request) wire.Response {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := wire.NewEncoder(conn).WriteRequest(req); err != nil {
		t.Fatalf("write request: %v", err)
	}

	resp, err := wire.NewDecoder(conn).ReadResponse()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp
}

func TestAddDependenciesThenSoloPhaseSucceeds(t *testing.T) {
	s, stop := startServer(t)
	defer stop()

	addr := s.Addr().String()

	graphResp := roundTrip(t, addr, wire.NewGraphRequest(map[string][]string{"A": nil}))
	if !graphResp.IsOK() {
		t.Fatalf("add-dependencies failed: %+v", graphResp)
	}

	phaseResp := roundTrip(t, addr, wire.NewDependencyRequest("A", "pre-dump", nil))
	if !phaseResp.IsOK() {
		t.Fatalf("expected immediate release for a dependency-free id, got %+v", phaseResp)
	}
}

func TestUnknownActionIsRejected(t *testing.T) {
	s, stop := startServer(t)
	defer stop()

	resp := roundTrip(t, s.Addr().String(), wire.Request{ID: "A", Action: "not-a-phase"})
	if resp.IsOK() {
		t.Fatal("expected an error response for an unknown action")
	}
}

func TestTwoPeersReleaseTogether(t *testing.T) {
	s, stop := startServer(t)
	defer stop()

	addr := s.Addr().String()

	graphResp := roundTrip(t, addr, wire.NewGraphRequest(map[string][]string{
		"A": {"B"},
		"B": {"A"},
	}))
	if !graphResp.IsOK() {
		t.Fatalf("add-dependencies failed: %+v", graphResp)
	}

	results := make(chan wire.Response, 2)
	go func() { results <- roundTrip(t, addr, wire.NewDependencyRequest("A", "pre-dump", []string{"B"})) }()
	go func() { results <- roundTrip(t, addr, wire.NewDependencyRequest("B", "pre-dump", []string{"A"})) }()

	for i := 0; i < 2; i++ {
		select {
		case r := <-results:
			if !r.IsOK() {
				t.Fatalf("expected both peers released, got %+v", r)
			}
		case <-time.After(3 * time.Second):
			t.Fatal("peers never released")
		}
	}
}
