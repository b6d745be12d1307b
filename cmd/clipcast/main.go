package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipcast/clipcast/internal/clipboard"
	"github.com/clipcast/clipcast/internal/config"
	"github.com/clipcast/clipcast/internal/relay"
)

func main() {
	configPath := flag.String("config", "", "Path to optional YAML config file")
	verbose := flag.Bool("verbose", false, "Log pings, pongs and routing decisions")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sink, err := clipboard.New()
	if err != nil {
		log.Fatalf("No usable clipboard mechanism: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	relay.NewSupervisor(cfg, sink, *verbose).Run(ctx)
}
