package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	ck "github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/streamvault/kafka-s3-relay/pkg/config"
)

// pollTimeout bounds each blocking ReadMessage call so cancellation is
// observed between polls.
const pollTimeout = 500 * time.Millisecond

// Message is a single record as delivered by the broker. Value is the raw
// payload; it is never decoded or re-encoded here.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Time      time.Time
	Partition int
	Offset    int64
}

// Consumer is a single-topic SASL_SSL subscription.
type Consumer struct {
	c     *ck.Consumer
	topic string
}

func consumerConfigMap(cfg config.KafkaConfig) *ck.ConfigMap {
	return &ck.ConfigMap{
		"bootstrap.servers": cfg.Bootstrap,
		"group.id":          cfg.GroupID,
		"security.protocol": "SASL_SSL",
		"sasl.mechanisms":   "PLAIN",
		"sasl.username":     cfg.Username,
		"sasl.password":     cfg.Password.Reveal(),
		"auto.offset.reset": "earliest",
	}
}

// NewConsumer opens a subscription to cfg.Topic under cfg.GroupID,
// authenticated with SASL_SSL/PLAIN. Connection and authentication failures
// are returned to the caller; there is no retry. Offset commit semantics are
// whatever the client library defaults to.
func NewConsumer(cfg config.KafkaConfig) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := ck.NewConsumer(consumerConfigMap(cfg))
	if err != nil {
		return nil, fmt.Errorf("create consumer: %w", err)
	}

	if err := c.Subscribe(cfg.Topic, nil); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", cfg.Topic, err)
	}

	return &Consumer{c: c, topic: cfg.Topic}, nil
}

// Fetch blocks until the next record arrives, the subscription fails, or ctx
// is canceled. The wait polls with a bounded timeout and re-checks ctx
// between polls, so an in-progress wait is interruptible.
func (c *Consumer) Fetch(ctx context.Context) (*Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := c.c.ReadMessage(pollTimeout)
		if err != nil {
			var ke ck.Error
			if errors.As(err, &ke) && ke.Code() == ck.ErrTimedOut {
				continue
			}
			return nil, fmt.Errorf("read from %s: %w", c.topic, err)
		}

		return &Message{
			Topic:     *msg.TopicPartition.Topic,
			Key:       msg.Key,
			Value:     msg.Value,
			Time:      msg.Timestamp,
			Partition: int(msg.TopicPartition.Partition),
			Offset:    int64(msg.TopicPartition.Offset),
		}, nil
	}
}

// Close releases the subscription. Safe to call only once.
func (c *Consumer) Close() error { return c.c.Close() }
