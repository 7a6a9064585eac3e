package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/periebm/batepapo-uol-api/app"
)

func main() {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	config, err := app.LoadConfig()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.New(config, log).Run(ctx); err != nil {
		log.Error("run", slog.Any("err", err))
		os.Exit(1)
	}
}
