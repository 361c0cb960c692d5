package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/streamvault/kafka-s3-relay/pkg/config"
	"github.com/streamvault/kafka-s3-relay/pkg/faker"
	"github.com/streamvault/kafka-s3-relay/pkg/kafka"
)

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file (optional, RELAY_* env vars override)")
	interval := flag.Duration("interval", time.Second, "delay between generated events")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Fakegen] Failed to load config: %v", err)
	}
	if err := cfg.Kafka.Validate(); err != nil {
		log.Fatalf("[Fakegen] Invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer := kafka.NewProducer(cfg.Kafka)
	defer producer.Close()

	log.Printf("[Fakegen] Publishing events to %s every %v", cfg.Kafka.Topic, *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Fakegen] Shutdown requested")
			return
		case <-ticker.C:
			faker.PublishUserEvent(ctx, producer)
		}
	}
}
