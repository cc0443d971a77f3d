package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sadopc/pomo/internal/app"
	"github.com/sadopc/pomo/internal/config"
	"github.com/sadopc/pomo/internal/console"
	"github.com/sadopc/pomo/internal/logger"
)

func main() {
	cfg, cfgErr := config.Load()
	log := logger.New(cfg, os.Stderr)
	if cfgErr != nil {
		log.WithError(cfgErr).Warn("ignoring invalid settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	capability := console.Negotiate(os.Stdout, log)
	log.WithField("ansi", capability.String()).Debug("terminal negotiated")

	code := app.Run(ctx, app.Options{
		In:         os.Stdin,
		Out:        os.Stdout,
		Config:     cfg,
		Capability: capability,
		Log:        log,
	})
	stop()

	if code != 0 {
		fmt.Fprintln(os.Stderr, "pomo: exited with errors")
	}
	os.Exit(code)
}
