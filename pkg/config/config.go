package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "RELAY_"
	envDelimiter = "__"

	defaultTopic   = "relay_test_events"
	defaultGroupID = "kafka-s3-relay"
	defaultRegion  = "us-east-1"
)

// Secret holds a credential. It prints redacted so config dumps and log
// lines never carry the raw value; call Reveal at the point of use.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

func (s Secret) GoString() string { return s.String() }

// Reveal returns the raw credential.
func (s Secret) Reveal() string { return string(s) }

type KafkaConfig struct {
	Bootstrap string `koanf:"bootstrap"`
	Username  string `koanf:"username"`
	Password  Secret `koanf:"password"`
	Topic     string `koanf:"topic"`
	GroupID   string `koanf:"group_id"`
}

type S3Config struct {
	AccessKey string `koanf:"access_key"`
	SecretKey Secret `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	Prefix    string `koanf:"prefix"`
	Region    string `koanf:"region"`
	Endpoint  string `koanf:"endpoint"` // empty means AWS; set for MinIO etc.
}

type MetricsConfig struct {
	Port int `koanf:"port"` // 0 disables the /metrics listener
}

type AppConfig struct {
	Kafka   KafkaConfig   `koanf:"kafka"`
	S3      S3Config      `koanf:"s3"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// Load merges an optional YAML file with environment variables (prefix
// `RELAY_`, delimiter `__`, e.g. RELAY_KAFKA__GROUP_ID -> kafka.group_id).
// Environment values win. A missing file is not an error: the environment
// alone can carry the full configuration.
func Load(path string) (AppConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return AppConfig{}, fmt.Errorf("read environment: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// envKey maps RELAY_KAFKA__GROUP_ID to kafka.group_id.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), envDelimiter, ".")
}

func applyDefaults(c *AppConfig) {
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = defaultTopic
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = defaultGroupID
	}
	if c.S3.Region == "" {
		c.S3.Region = defaultRegion
	}
}

// Validate reports the broker settings a consumer or producer cannot start
// without.
func (c KafkaConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Bootstrap) == "" {
		missing = append(missing, "kafka.bootstrap")
	}
	if c.Username == "" {
		missing = append(missing, "kafka.username")
	}
	if c.Password == "" {
		missing = append(missing, "kafka.password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Validate reports the storage settings a bucket writer cannot start without.
func (c S3Config) Validate() error {
	var missing []string
	if c.AccessKey == "" {
		missing = append(missing, "s3.access_key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "s3.secret_key")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "s3.bucket")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
