package relay

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/streamvault/kafka-s3-relay/pkg/kafka"
	"github.com/streamvault/kafka-s3-relay/pkg/storage"
)

// Source produces records from an open subscription. Fetch blocks until a
// record arrives, the subscription fails, or ctx is canceled.
type Source interface {
	Fetch(ctx context.Context) (*kafka.Message, error)
	Close() error
}

// Store persists one object per call.
type Store interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Relay copies records from a Source to a Store, strictly one at a time:
// receive, write, repeat. It owns the Source for its lifetime and closes it
// exactly once when Run returns, on every exit path.
type Relay struct {
	source Source
	store  Store
	prefix string
}

func New(source Source, store Store, prefix string) *Relay {
	return &Relay{source: source, store: store, prefix: prefix}
}

// Run receives and writes records until ctx is canceled or an operation
// fails. Cancellation is a normal shutdown and returns nil. Any receive or
// write error ends the loop and is returned: there is no retry and no
// dead-letter path, so a single failed write terminates the relay.
func (r *Relay) Run(ctx context.Context) error {
	defer func() {
		if err := r.source.Close(); err != nil {
			log.Printf("[Relay] Error closing subscription: %v", err)
		} else {
			log.Println("[Relay] Subscription closed")
		}
	}()

	log.Println("[Relay] Waiting for records...")
	for {
		msg, err := r.source.Fetch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Println("[Relay] Shutdown requested, stopping")
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}

		key := storage.ObjectKey(r.prefix, msg.Time)
		if err := r.store.Put(ctx, key, msg.Value); err != nil {
			writeFailures.Inc()
			return fmt.Errorf("write %s: %w", key, err)
		}

		recordsRelayed.Inc()
		bytesRelayed.Add(float64(len(msg.Value)))
		log.Printf("[Relay] Wrote %s (%d bytes)", key, len(msg.Value))
	}
}
