package faker

import (
	"context"
	"fmt"
	"log"
	"math/rand" // Using weak random for test data generation only
	"time"

	"github.com/streamvault/kafka-s3-relay/pkg/kafka"
)

const maxUsers = 50 // Maximum number of test users to generate

var (
	userIDs    []string
	eventTypes = []string{"login", "logout", "purchase", "page_view"}
)

func init() { //nolint:gochecknoinits // Required for test data initialization
	for i := 1; i <= maxUsers; i++ {
		userIDs = append(userIDs, fmt.Sprintf("u%d", i))
	}
}

func randomUserID() string {
	return userIDs[rand.Intn(len(userIDs))] //nolint:gosec // Using weak random for test data generation only
}

// UserEvent builds one random event payload. event_time is unix millis, the
// same clock the relay derives object keys from.
func UserEvent() map[string]any {
	return map[string]any{
		"user_id":    randomUserID(),
		"event_type": eventTypes[rand.Intn(len(eventTypes))], //nolint:gosec // Using weak random for test data generation only
		"event_time": time.Now().UnixMilli(),
	}
}

// PublishUserEvent sends one random event to the producer's topic, keyed by
// user id.
func PublishUserEvent(ctx context.Context, p *kafka.Producer) {
	payload := UserEvent()

	key, _ := payload["user_id"].(string)
	if err := p.Publish(ctx, []byte(key), payload); err != nil {
		log.Printf("[Fakegen] Failed to publish event: %v", err)
		return
	}

	log.Printf("[Fakegen] Published event: %+v", payload)
}
