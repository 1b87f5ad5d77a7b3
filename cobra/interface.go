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

// Package cobra is a thin, instance-based wrapper around spf13/cobra used to
// assemble this project's three subcommands (server, client, completions)
// without relying on cobra's package-level globals.
package cobra

import (
	"time"

	liblog "github.com/behouba/criu-coordinator/logger"
	spfcbr "github.com/spf13/cobra"
)

// FuncInit is called once cobra has parsed flags, before command execution.
type FuncInit func()

// FuncLogger returns the logger instance the CLI layer should use.
type FuncLogger func() liblog.Logger

// Cobra wraps a root *cobra.Command with typed flag registration helpers.
type Cobra interface {
	// SetVersion sets the version string reported by --version.
	SetVersion(version string)
	// SetFuncInit registers a callback invoked once flags are parsed.
	SetFuncInit(fct FuncInit)
	// SetLogger registers the logger used for diagnostics emitted by this package.
	SetLogger(fct FuncLogger)

	// Init builds the root command from the registered name/version/description.
	Init(use, short, long string)

	AddFlagString(persistent bool, p *string, name, shorthand string, value string, usage string)
	AddFlagInt(persistent bool, p *int, name, shorthand string, value int, usage string)
	AddFlagBool(persistent bool, p *bool, name, shorthand string, value bool, usage string)
	AddFlagCount(persistent bool, p *int, name, shorthand string, usage string)
	AddFlagDuration(persistent bool, p *time.Duration, name, shorthand string, value time.Duration, usage string)

	// NewCommand builds a *cobra.Command skeleton for a subcommand.
	NewCommand(cmd, short, long, useWithoutCmd, exampleWithoutCmd string) *spfcbr.Command
	// AddCommand attaches subcommands to the root command.
	AddCommand(subCmd ...*spfcbr.Command)
	// AddCommandCompletion registers the "completions" subcommand.
	AddCommandCompletion()

	// Execute runs the root command with os.Args.
	Execute() error
	// Cobra exposes the underlying *cobra.Command for advanced wiring.
	Cobra() *spfcbr.Command
}

// New returns an uninitialized Cobra wrapper. Call Init before use.
func New() Cobra {
	return &cobra{}
}
