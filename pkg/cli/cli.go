// Package cli is the taskpad command line.
package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/logrusorgru/aurora"
)

// errShown marks errors whose notification was already printed.
var errShown = errors.New("reported")

// Main is the entrypoint for the CLI. Call Main from an actual main function.
func Main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRoot()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errShown) {
			log.Print(aurora.Red(err))
		}
		stop()
		os.Exit(1)
	}
}
