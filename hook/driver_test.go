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

package hook_test

import (
	"net"
	"testing"

	"github.com/behouba/criu-coordinator/hook"
	"github.com/behouba/criu-coordinator/phase"
	"github.com/behouba/criu-coordinator/stream"
)

func writeFakeCaptureSocket(t *testing.T, dir string) error {
	ln, err := net.Listen("unix", stream.CapturePath(dir))
	if err != nil {
		return err
	}
	t.Cleanup(func() { ln.Close() })
	return nil
}

func TestUnknownActionIsSkippedWithoutDialing(t *testing.T) {
	out, err := hook.Run(hook.Request{
		ID:     "A",
		Action: phase.Phase("not-a-real-phase"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !out.Skipped {
		t.Fatal("expected the outcome to be marked skipped")
	}
}

func TestPreDumpDefersWhenStreamerAlreadyCaptured(t *testing.T) {
	dir := t.TempDir()

	if err := writeFakeCaptureSocket(t, dir); err != nil {
		t.Fatalf("setup: %v", err)
	}

	out, err := hook.Run(hook.Request{
		ID:        "A",
		Action:    phase.PreDump,
		ImagesDir: dir,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !out.Skipped {
		t.Fatal("expected pre-dump to defer to the running streamer")
	}
}

func TestBarrierRPCFailsWhenCoordinatorUnreachable(t *testing.T) {
	_, err := hook.Run(hook.Request{
		Address:   "127.0.0.1",
		Port:      "1",
		ID:        "A",
		Action:    phase.PostDump,
		ImagesDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected a dial error against a closed port")
	}
}
