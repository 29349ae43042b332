// Package config loads valueprop settings from an optional YAML file and command-line overrides.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "valueprop.yaml"

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved application configuration.
type Config struct {
	LogLevel string  `mapstructure:"log_level"`
	Storage  Storage `mapstructure:"storage"`
	HTTP     HTTP    `mapstructure:"http"`
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Backend       string `mapstructure:"backend"`
	Dir           string `mapstructure:"dir"`
	Redis         Redis  `mapstructure:"redis"`
	EncryptionKey string `mapstructure:"encryption_key"`
	// FallbackKeys are retired hex keys still accepted for decryption.
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// Redis holds the connection settings for the redis backend.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// HTTP configures the API server.
type HTTP struct {
	Port int `mapstructure:"port"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Storage: Storage{
			Backend: BackendFile,
			Dir:     ".valueprop/storage",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "valueprop:",
			},
		},
		HTTP: HTTP{Port: 8080},
	}
}

// Load reads path (a missing file is not an error when path is DefaultPath or empty),
// overlays overrides keyed by dotted names such as "storage.backend", and validates the result.
func Load(path string, overrides map[string]any) (Config, error) {
	raw := map[string]any{}

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	for key, value := range overrides {
		setPath(raw, strings.Split(key, "."), value)
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// setPath writes value into nested maps, creating intermediate levels.
func setPath(m map[string]any, path []string, value any) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate checks enumerations and the encryption key shape.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http port %d", ErrInvalidConfig, c.HTTP.Port)
	}
	if _, err := c.EncryptionKey(); err != nil {
		return err
	}
	if _, err := c.DecryptionFallbackKeys(); err != nil {
		return err
	}
	return nil
}

// EncryptionKey decodes the configured hex key. It returns nil when encryption is off.
func (c Config) EncryptionKey() ([]byte, error) {
	if c.Storage.EncryptionKey == "" {
		return nil, nil
	}
	return decodeKey(c.Storage.EncryptionKey)
}

// DecryptionFallbackKeys decodes the retired keys used during rotation.
func (c Config) DecryptionFallbackKeys() ([][]byte, error) {
	keys := make([][]byte, 0, len(c.Storage.FallbackKeys))
	for _, k := range c.Storage.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is not hex: %v", ErrInvalidConfig, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: encryption key must be 32 bytes, got %d", ErrInvalidConfig, len(key))
	}
	return key, nil
}
