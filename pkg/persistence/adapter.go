package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/ports"
	"github.com/aretw0/valueprop/pkg/session"
)

// DefaultKey is the storage key holding the flat answer record.
const DefaultKey = "valueProp_data"

// Adapter is the durable mirror of a session's answers.
type Adapter struct {
	kv     ports.KVStore
	key    string
	logger *slog.Logger
	onSave func(err error)
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(a *Adapter) {
		a.key = key
	}
}

// WithLogger configures a logger for the Adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithSaveObserver registers a callback invoked after every save attempt.
// err is nil on success.
func WithSaveObserver(fn func(err error)) Option {
	return func(a *Adapter) {
		a.onSave = fn
	}
}

// NewAdapter creates an Adapter over kv.
func NewAdapter(kv ports.KVStore, opts ...Option) *Adapter {
	a := &Adapter{
		kv:     kv,
		key:    DefaultKey,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Bind restores the stored record into store and then attaches the save path,
// so the initial load can never be overwritten by a stale save.
func (a *Adapter) Bind(ctx context.Context, store *session.Store) {
	a.Restore(ctx, store)
	a.Attach(store)
}

// Restore merges the stored record into store, field by field.
// Absent or unreadable records leave the defaults untouched.
func (a *Adapter) Restore(ctx context.Context, store *session.Store) bool {
	patch, ok := a.Load(ctx)
	if !ok {
		return false
	}
	store.Hydrate(ctx, patch)
	a.logger.Debug("Restored saved answers", "key", a.key)
	return true
}

// Load reads the stored record as a patch: fields missing from the record stay absent.
func (a *Adapter) Load(ctx context.Context) (domain.Patch, bool) {
	raw, err := a.kv.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			a.logger.Debug("No saved answers", "key", a.key)
		} else {
			a.logger.Warn("Failed to load saved answers", "key", a.key, "error", err)
		}
		return domain.Patch{}, false
	}

	var patch domain.Patch
	if err := json.Unmarshal(raw, &patch); err != nil {
		a.logger.Warn("Failed to parse saved answers", "key", a.key, "error", err)
		return domain.Patch{}, false
	}
	return patch, true
}

// Attach subscribes a save of the full record to every data mutation of store.
func (a *Adapter) Attach(store *session.Store) {
	store.Subscribe(func(ctx context.Context, data domain.AnswerData) {
		_ = a.Save(ctx, data)
	})
}

// Save writes the full record. Failures are logged and returned for callers that care.
func (a *Adapter) Save(ctx context.Context, data domain.AnswerData) error {
	err := a.save(ctx, data)
	if err != nil {
		a.logger.Error("Failed to save answers", "key", a.key, "error", err)
	}
	if a.onSave != nil {
		a.onSave(err)
	}
	return err
}

func (a *Adapter) save(ctx context.Context, data domain.AnswerData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, a.key, raw)
}

// Clear removes the stored record.
func (a *Adapter) Clear(ctx context.Context) error {
	return a.kv.Delete(ctx, a.key)
}
