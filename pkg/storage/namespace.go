// Package storage is a general-purpose, fail-soft key-value helper.
//
// Values are wrapped in a versioned envelope and stored under a common prefix,
// so the namespace can be inspected and cleared as a whole. No operation returns
// an error: failures are logged and reported as false, empty or zero results.
package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/ports"
)

const (
	// DefaultPrefix namespaces every key written by the helper.
	DefaultPrefix = "valueProp_"
	// EnvelopeVersion is stamped on every stored envelope.
	EnvelopeVersion = "1.0"
)

// Envelope wraps a stored value to support future format migration.
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	Version   string          `json:"version"`
}

// Info summarizes the namespace.
type Info struct {
	// Size is the total byte length of every stored payload under the prefix.
	Size int `json:"size"`
	// Keys are the logical keys, with the prefix stripped.
	Keys []string `json:"keys"`
}

// Namespace reads and writes enveloped values under a prefix.
type Namespace struct {
	kv     ports.KVStore
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Namespace.
type Option func(*Namespace)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(n *Namespace) {
		n.prefix = prefix
	}
}

// WithLogger configures a logger for the Namespace.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Namespace) {
		n.logger = logger
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(n *Namespace) {
		n.now = now
	}
}

// New creates a Namespace over kv.
func New(kv ports.KVStore, opts ...Option) *Namespace {
	n := &Namespace{
		kv:     kv,
		prefix: DefaultPrefix,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Prefix returns the key prefix in use.
func (n *Namespace) Prefix() string {
	return n.prefix
}

// Save stores value under key inside a timestamped envelope.
func (n *Namespace) Save(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		n.logger.Error("Failed to save to storage", "key", key, "error", err)
		return false
	}

	raw, err := json.Marshal(Envelope{
		Data:      data,
		Timestamp: n.now().UnixMilli(),
		Version:   EnvelopeVersion,
	})
	if err != nil {
		n.logger.Error("Failed to save to storage", "key", key, "error", err)
		return false
	}

	if err := n.kv.Set(ctx, n.prefix+key, raw); err != nil {
		n.logger.Error("Failed to save to storage", "key", key, "error", err)
		return false
	}
	return true
}

// Load decodes the value stored under key into out.
// It reports false when the key is absent or the stored value is unreadable.
func (n *Namespace) Load(ctx context.Context, key string, out any) bool {
	env, ok := n.LoadEnvelope(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		n.logger.Error("Failed to load from storage", "key", key, "error", err)
		return false
	}
	return true
}

// LoadEnvelope returns the raw envelope stored under key.
func (n *Namespace) LoadEnvelope(ctx context.Context, key string) (Envelope, bool) {
	raw, err := n.kv.Get(ctx, n.prefix+key)
	if err != nil {
		// Absent keys are a normal miss, not worth a log line.
		if !isNotFound(err) {
			n.logger.Error("Failed to load from storage", "key", key, "error", err)
		}
		return Envelope{}, false
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		n.logger.Error("Failed to load from storage", "key", key, "error", err)
		return Envelope{}, false
	}
	return env, true
}

// Remove deletes key.
func (n *Namespace) Remove(ctx context.Context, key string) bool {
	if err := n.kv.Delete(ctx, n.prefix+key); err != nil {
		n.logger.Error("Failed to remove from storage", "key", key, "error", err)
		return false
	}
	return true
}

// Clear deletes every key under the prefix.
func (n *Namespace) Clear(ctx context.Context) bool {
	keys, err := n.kv.Keys(ctx, n.prefix)
	if err != nil {
		n.logger.Error("Failed to clear storage", "error", err)
		return false
	}
	for _, k := range keys {
		if err := n.kv.Delete(ctx, k); err != nil {
			n.logger.Error("Failed to clear storage", "key", k, "error", err)
			return false
		}
	}
	return true
}

// Info reports the logical keys under the prefix and their total stored size.
func (n *Namespace) Info(ctx context.Context) Info {
	keys, err := n.kv.Keys(ctx, n.prefix)
	if err != nil {
		n.logger.Error("Failed to get storage info", "error", err)
		return Info{Keys: []string{}}
	}

	info := Info{Keys: make([]string, 0, len(keys))}
	for _, k := range keys {
		raw, err := n.kv.Get(ctx, k)
		if err != nil && !isNotFound(err) {
			n.logger.Error("Failed to get storage info", "key", k, "error", err)
			return Info{Keys: []string{}}
		}
		info.Size += len(raw)
		info.Keys = append(info.Keys, strings.TrimPrefix(k, n.prefix))
	}
	return info
}
