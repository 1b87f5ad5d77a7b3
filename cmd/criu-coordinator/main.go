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

// Command criu-coordinator is both the coordinator and the hook: the
// invocation running `server` listens for hook connections, the one
// running `client` is what the local C/R engine spawns per lifecycle
// phase, and invoking the binary with CRTOOLS_SCRIPT_ACTION set in the
// environment short-circuits straight into hook mode without going through
// cobra at all, matching how the local C/R engine actually invokes hooks.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	liblog "github.com/behouba/criu-coordinator/logger"
	loglvl "github.com/behouba/criu-coordinator/logger/level"
	spfcbr "github.com/spf13/cobra"

	libcbr "github.com/behouba/criu-coordinator/cobra"
	"github.com/behouba/criu-coordinator/config"
	"github.com/behouba/criu-coordinator/coordsrv"
	"github.com/behouba/criu-coordinator/hook"
	"github.com/behouba/criu-coordinator/phase"
	"github.com/behouba/criu-coordinator/stream"
	"github.com/behouba/criu-coordinator/wire"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == hook.StreamPumpArg {
		os.Exit(runStreamPumpChild(os.Args[2:]))
	}

	if action := os.Getenv(phase.EnvAction); action != "" {
		os.Exit(runHookFromEnv(phase.Phase(action)))
	}

	app := libcbr.New()
	app.SetVersion(version)
	app.Init("criu-coordinator", "distributed checkpoint/restore barrier coordinator",
		"criu-coordinator runs either the barrier server or a one-shot client hook invocation.")

	app.AddCommand(newServerCommand(), newClientCommand())
	app.AddCommandCompletion()

	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runHookFromEnv handles the implicit invocation shape: the local C/R
// engine execs this binary with environment variables set and no
// recognizable subcommand, per §6.2.
func runHookFromEnv(action phase.Phase) int {
	imagesDir := os.Getenv(phase.EnvImageDir)
	initPID, _ := strconv.Atoi(os.Getenv(phase.EnvInitPID))

	cfg, err := config.Load(imagesDir, action, initPID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	streamSocket := ""
	if action == phase.PreStream {
		streamSocket = stream.CapturePath(imagesDir) + ".upstream"
	}

	if _, herr := hook.Run(hook.Request{
		Address:      valueOr(cfg.Address, phase.DefaultAddress),
		Port:         valueOr(cfg.Port, phase.DefaultPort),
		ID:           cfg.ID,
		Dependencies: cfg.Dependencies,
		Action:       action,
		ImagesDir:    imagesDir,
		InitPID:      initPID,
		StreamSocket: streamSocket,
	}); herr != nil {
		fmt.Fprintln(os.Stderr, herr.Error())
		return 1
	}

	return 0
}

// runStreamPumpChild is the body of the detached process hook.Run re-execs
// into for the pre-stream pipeline; it blocks until killed.
func runStreamPumpChild(args []string) int {
	if len(args) != 2 {
		return 1
	}

	if err := stream.New(args[0], args[1]).Run(context.Background()); err != nil {
		return 1
	}

	return 0
}

func newServerCommand() *spfcbr.Command {
	defaults := config.LoadServer()

	var address, port, logFile string
	var maxRetries int

	c := &spfcbr.Command{
		Use:   "server",
		Short: "run the coordinator's barrier server",
		Long:  "server listens for hook connections and arbitrates the barrier protocol for every phase.",
	}

	c.Flags().StringVar(&address, "address", defaults.Address, "address to listen on")
	c.Flags().StringVar(&port, "port", defaults.Port, "port to listen on")
	c.Flags().IntVar(&maxRetries, "max-retries", defaults.MaxRetries, "barrier poll retry budget")
	c.Flags().StringVar(&logFile, "log-file", defaults.LogFile, "log file path, - for stderr")

	c.RunE = func(cmd *spfcbr.Command, args []string) error {
		log := liblog.New(cmd.Context())
		if cerr := applyLogFile(log, logFile); cerr != nil {
			return cerr
		}

		srv := coordsrv.New(log)
		srv.SetMaxRetries(maxRetries)

		// Mirrors the teacher's httpserver.WaitNotify shutdown discipline:
		// SIGINT/SIGTERM/SIGQUIT cancel the context Serve listens on, so the
		// listener and every in-flight connection unwind cleanly instead of
		// being killed mid-barrier.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		defer stop()

		if err := srv.Serve(ctx, net.JoinHostPort(address, port)); err != nil {
			return err
		}

		return nil
	}

	return c
}

func newClientCommand() *spfcbr.Command {
	var address, port, id, deps, action, imagesDir, logFile string
	var enableStream bool

	c := &spfcbr.Command{
		Use:   "client",
		Short: "run a single hook invocation",
		Long:  "client performs one phase's side effects, announces to the coordinator, and waits for release.",
	}

	c.Flags().StringVar(&address, "address", phase.DefaultAddress, "coordinator address")
	c.Flags().StringVar(&port, "port", phase.DefaultPort, "coordinator port")
	c.Flags().StringVar(&id, "id", "", "participant id")
	c.Flags().StringVar(&deps, "deps", "", "colon-separated dependency ids")
	c.Flags().StringVar(&action, "action", "", "phase name")
	c.Flags().StringVar(&imagesDir, "images-dir", "", "images directory")
	c.Flags().StringVar(&logFile, "log-file", "-", "log file path, - for stderr")
	c.Flags().BoolVar(&enableStream, "stream", false, "spawn the streaming pipeline after release")

	c.RunE = func(cmd *spfcbr.Command, args []string) error {
		log := liblog.New(cmd.Context())
		if cerr := applyLogFile(log, logFile); cerr != nil {
			return cerr
		}

		streamSocket := ""
		if enableStream {
			streamSocket = stream.CapturePath(imagesDir) + ".upstream"
		}

		_, err := hook.Run(hook.Request{
			Address:      address,
			Port:         port,
			ID:           id,
			Dependencies: wire.SplitDeps(deps),
			Action:       phase.Phase(action),
			ImagesDir:    imagesDir,
			StreamSocket: streamSocket,
		})
		if log.CheckError(loglvl.ErrorLevel, loglvl.DebugLevel, "hook invocation "+action, err) {
			return err
		}

		return nil
	}

	return c
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// applyLogFile redirects log's sink to path, per the log-sink config surface
// of §6.3. "-" and "" both mean stderr, the Logger's default.
func applyLogFile(log liblog.Logger, path string) error {
	if path == "" || path == "-" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	return nil
}
