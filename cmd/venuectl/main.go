// Package main утилита командной строки для работы с заведением через сервер venueops.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmeshcher/venueops/internal/config"
	"github.com/mmeshcher/venueops/internal/gateway"
	"github.com/mmeshcher/venueops/internal/logger"
	"github.com/mmeshcher/venueops/internal/venue"
)

func main() {
	cfg, args, err := config.ParseClient(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := gateway.NewHTTPClient(cfg.APIAddress, cfg.Timeout, log)
	v, err := venue.New(venue.Session{TenantID: cfg.TenantID}, gw, log, venue.WithRoomCount(cfg.RoomCount))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := run(ctx, v, args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
