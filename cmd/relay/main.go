package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/streamvault/kafka-s3-relay/pkg/config"
	"github.com/streamvault/kafka-s3-relay/pkg/kafka"
	"github.com/streamvault/kafka-s3-relay/pkg/relay"
	"github.com/streamvault/kafka-s3-relay/pkg/storage"
	"github.com/streamvault/kafka-s3-relay/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file (optional, RELAY_* env vars override)")
	flag.Parse()

	log.Println("[Relay] Starting kafka-s3-relay...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Relay] Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := kafka.NewConsumer(cfg.Kafka)
	if err != nil {
		log.Fatalf("[Kafka] Failed to create consumer: %v", err)
	}

	bucket, err := storage.NewBucket(ctx, cfg.S3)
	if err != nil {
		_ = consumer.Close()
		log.Fatalf("[Storage] Failed to create bucket client: %v", err)
	}

	log.Printf("[Relay] Relaying topic %s (group %s) to bucket %s prefix %q",
		cfg.Kafka.Topic, cfg.Kafka.GroupID, cfg.S3.Bucket, cfg.S3.Prefix)

	g, ctx := errgroup.WithContext(ctx)

	rel := relay.New(consumer, bucket, cfg.S3.Prefix)
	g.Go(func() error { return rel.Run(ctx) })

	if cfg.Metrics.Port > 0 {
		srv := telemetry.Server(cfg.Metrics.Port)
		g.Go(func() error {
			log.Printf("[Metrics] Serving /metrics on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("[Relay] Terminated with error: %v", err)
	}
	log.Println("[Relay] Shutdown complete")
}
