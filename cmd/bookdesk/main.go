package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kgrae/bookdesk/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Execute(ctx); err != nil {
		app.PrintError(err)
		return 1
	}
	return 0
}
