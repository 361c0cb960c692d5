package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/streamvault/kafka-s3-relay/pkg/config"
)

func TestObjectKey(t *testing.T) {
	ts := time.UnixMilli(1690000000000)

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{
			name:   "absolute_prefix",
			prefix: "/dir/sub",
			want:   "/dir/sub/kafka-messages/1690000000000.json",
		},
		{
			name:   "trailing_slash_stripped",
			prefix: "/dir/sub/",
			want:   "/dir/sub/kafka-messages/1690000000000.json",
		},
		{
			name:   "relative_prefix",
			prefix: "backups",
			want:   "backups/kafka-messages/1690000000000.json",
		},
		{
			name:   "empty_prefix",
			prefix: "",
			want:   "/kafka-messages/1690000000000.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectKey(tt.prefix, ts); got != tt.want {
				t.Errorf("ObjectKey mismatch: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestObjectKeyUsesMillis(t *testing.T) {
	// One second past the epoch must render as 1000, not 1.
	if got := ObjectKey("p", time.UnixMilli(1000)); got != "p/kafka-messages/1000.json" {
		t.Errorf("ObjectKey mismatch: got %s", got)
	}
}

func TestNewBucketRejectsIncompleteConfig(t *testing.T) {
	_, err := NewBucket(context.Background(), config.S3Config{Bucket: "my-bucket"})
	if err == nil {
		t.Fatalf("Expected error for missing credentials")
	}
}

func TestBucketPut(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping storage integration test in short mode")
	}

	endpoint := os.Getenv("RELAY_TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("RELAY_TEST_S3_ENDPOINT not set, skipping storage integration test")
	}

	cfg := config.S3Config{
		AccessKey: os.Getenv("RELAY_TEST_S3_ACCESS_KEY"),
		SecretKey: config.Secret(os.Getenv("RELAY_TEST_S3_SECRET_KEY")),
		Bucket:    os.Getenv("RELAY_TEST_S3_BUCKET"),
		Region:    "us-east-1",
		Endpoint:  endpoint,
	}
	if err := cfg.Validate(); err != nil {
		t.Skipf("Incomplete S3 test environment: %v", err)
	}

	bucket, err := NewBucket(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create bucket client: %v", err)
	}

	key := ObjectKey("relay-test", time.Now())
	if err := bucket.Put(context.Background(), key, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
}
