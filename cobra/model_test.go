/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package cobra_test

import (
	"testing"

	libcbr "github.com/behouba/criu-coordinator/cobra"
)

func TestInitRegistersRootCommand(t *testing.T) {
	app := libcbr.New()
	app.SetVersion("0.0.0-test")
	app.Init("coordinator", "short desc", "long desc")

	if app.Cobra() == nil {
		t.Fatal("expected a root command after Init")
	}

	if got := app.Cobra().Name(); got != "coordinator" {
		t.Fatalf("expected root command name 'coordinator', got %q", got)
	}
}

func TestAddCommandAttachesSubcommand(t *testing.T) {
	app := libcbr.New()
	app.Init("coordinator", "short", "long")

	sub := app.NewCommand("server", "run the coordinator", "runs the barrier coordinator", "", "")
	app.AddCommand(sub)

	found := false
	for _, c := range app.Cobra().Commands() {
		if c.Name() == "server" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'server' subcommand to be registered")
	}
}

func TestAddCommandCompletionRegistersCompletions(t *testing.T) {
	app := libcbr.New()
	app.Init("coordinator", "short", "long")
	app.AddCommandCompletion()

	found := false
	for _, c := range app.Cobra().Commands() {
		if c.Name() == "completions" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected 'completions' subcommand to be registered")
	}
}
