// Package main is the entry point for the nextver CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/relicta-tech/nextver/internal/cli"
	buildversion "github.com/relicta-tech/nextver/internal/version"
)

// Version information set by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived signal %v, stopping...\n", sig)
		cancel()

		shutdownTimer := time.NewTimer(shutdownTimeout)
		defer shutdownTimer.Stop()

		select {
		case <-done:
			return
		case <-shutdownTimer.C:
			fmt.Fprintf(os.Stderr, "\nShutdown timeout (%v) exceeded, forcing exit\n", shutdownTimeout)
			os.Exit(cli.ExitCanceled)
		case sig = <-sigChan:
			fmt.Fprintf(os.Stderr, "\nReceived second signal %v, forcing exit\n", sig)
			os.Exit(cli.ExitCanceled)
		}
	}()

	if version == "dev" {
		version = buildversion.Get()
	}
	cli.SetVersionInfo(version, commit, date)

	var exitCode int
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := cli.ExecuteContext(ctx); err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(os.Stderr, "Operation canceled")
				exitCode = cli.ExitCanceled
				return
			}
			// cobra errors are silenced; the minimum gate reports through its output.
			exitCode = cli.ExitCode(err)
			if exitCode != cli.ExitMinimumNotMet {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}()

	wg.Wait()

	close(done)
	cancel()

	cli.Cleanup()

	os.Exit(exitCode)
}
