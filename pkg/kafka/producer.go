package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"github.com/streamvault/kafka-s3-relay/pkg/config"
)

const batchTimeoutMillis = 100 // Batch timeout in milliseconds

var (
	// jsonFast is our high-performance JSON API.
	jsonFast = jsoniter.ConfigFastest
)

// Producer wraps a kafka.Writer pointed at a single topic. It exists for the
// fake-event generator; the relay itself never produces.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a Kafka producer using the same SASL_SSL/PLAIN
// credentials the consumer authenticates with.
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.Bootstrap, ",")...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: batchTimeoutMillis * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Transport: &kafka.Transport{
			TLS: &tls.Config{MinVersion: tls.VersionTLS12},
			SASL: plain.Mechanism{
				Username: cfg.Username,
				Password: cfg.Password.Reveal(),
			},
		},
	}

	return &Producer{writer: w, topic: cfg.Topic}
}

// Publish marshals value as JSON and sends a single message.
func (p *Producer) Publish(ctx context.Context, key []byte, value map[string]any) error {
	payload, err := jsonFast.Marshal(value)
	if err != nil {
		return fmt.Errorf("json marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   key,
		Value: payload,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("[Kafka] publish failed topic=%s: %v", p.topic, err)
		return err
	}
	return nil
}

// Close shuts down the writer cleanly.
func (p *Producer) Close() error {
	return p.writer.Close()
}
