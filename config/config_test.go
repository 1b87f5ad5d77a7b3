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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/behouba/criu-coordinator/config"
	"github.com/behouba/criu-coordinator/phase"
)

func TestWriteThenReadPerCheckpointRoundTrips(t *testing.T) {
	dir := t.TempDir()

	if err := config.WritePerCheckpoint(dir, "my-container", []string{"a", "b"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.Load(dir, phase.PreRestore, 0)
	if err != nil {
		t.Fatalf("load restore side: %v", err)
	}

	if cfg.ID != "my-container" {
		t.Fatalf("expected id to round-trip, got %q", cfg.ID)
	}
	if len(cfg.Dependencies) != 2 || cfg.Dependencies[0] != "a" || cfg.Dependencies[1] != "b" {
		t.Fatalf("expected deps to round-trip, got %v", cfg.Dependencies)
	}
}

func TestRestoreSideFailsWithoutPerCheckpointFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := config.Load(dir, phase.PostRestore, 0); err == nil {
		t.Fatal("expected an error when no per-checkpoint config exists")
	}
}

func TestDumpSideWithoutIDOrPIDFails(t *testing.T) {
	dir := t.TempDir()

	if _, err := config.Load(dir, phase.PreDump, 0); err == nil {
		t.Fatal("expected an error: no explicit id and no init pid for discovery")
	}
}

func TestDumpSideUsesPreCreatedLocalFileVerbatim(t *testing.T) {
	dir := t.TempDir()

	local := `{"id":"x","address":"10.0.0.5","port":"9000"}`
	if err := os.WriteFile(filepath.Join(dir, "criu-coordinator.json"), []byte(local), 0o644); err != nil {
		t.Fatalf("write local config: %v", err)
	}

	cfg, err := config.Load(dir, phase.PreDump, 0)
	if err != nil {
		t.Fatalf("load dump side: %v", err)
	}

	if cfg.ID != "x" {
		t.Fatalf("expected id from the pre-created local file, got %q", cfg.ID)
	}
	if cfg.Address != "10.0.0.5" || cfg.Port != "9000" {
		t.Fatalf("expected address/port from the pre-created local file, got %s:%s", cfg.Address, cfg.Port)
	}
}

func TestDependenciesByPrefixReturnsOneMatchingEntry(t *testing.T) {
	central := map[string][]string{
		"abc": {"x"},
		"ab":  {"y"},
	}

	deps, ok := config.DependenciesByPrefix(central, "abcdef")
	if !ok || len(deps) != 1 {
		t.Fatalf("expected exactly one match, got %v ok=%v", deps, ok)
	}
}

func TestContainerIDFromPIDFailsForMissingPID(t *testing.T) {
	if _, err := config.ContainerIDFromPID(999999); err == nil {
		t.Fatal("expected an error for a nonexistent pid")
	}
}
