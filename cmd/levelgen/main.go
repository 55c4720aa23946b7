package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	levelgencmd "github.com/louisbranch/manifold.space/internal/cmd/levelgen"
)

func main() {
	cfg, err := levelgencmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[LEVELGEN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := levelgencmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to generate: %v", err)
	}
}
