package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/streamvault/kafka-s3-relay/pkg/config"
)

// keyNamespace is the fixed segment between the configured prefix and the
// per-record file name.
const keyNamespace = "kafka-messages"

// Bucket writes objects into a single S3 bucket.
type Bucket struct {
	uploader *manager.Uploader
	bucket   string
}

// NewBucket builds an S3 client from static credentials. A non-empty
// Endpoint switches to path-style addressing for S3-compatible stores.
func NewBucket(ctx context.Context, cfg config.S3Config) (*Bucket, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.Region),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey.Reveal(), ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Bucket{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
	}, nil
}

// Put uploads body verbatim at key. The payload is assumed to already be
// JSON text; it is not validated or re-encoded. No retry beyond the SDK's
// own defaults.
func (b *Bucket) Put(ctx context.Context, key string, body []byte) error {
	_, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", b.bucket, key, err)
	}
	return nil
}

// ObjectKey derives the storage key for a record's event time:
// {prefix}/kafka-messages/{unix-millis}.json. Only a trailing slash is
// stripped from the prefix; a leading slash is kept as-is.
func ObjectKey(prefix string, ts time.Time) string {
	return fmt.Sprintf("%s/%s/%d.json", strings.TrimSuffix(prefix, "/"), keyNamespace, ts.UnixMilli())
}
