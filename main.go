package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kino-6/q-deck-launcher-sub002/internal/cli"
	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey/oshotkey"
	"golang.design/x/hotkey/mainthread"
)

// main hands the main thread to the hotkey library, which needs it on macOS,
// and runs the command line on it.
func main() {
	var code int
	mainthread.Init(func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		code = cli.Execute(ctx, os.Args[1:], oshotkey.New)
	})
	os.Exit(code)
}
