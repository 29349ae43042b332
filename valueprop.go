package valueprop

import (
	"context"
	"log/slog"

	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/adapters/memory"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/persistence"
	"github.com/aretw0/valueprop/pkg/ports"
	"github.com/aretw0/valueprop/pkg/session"
	"github.com/aretw0/valueprop/pkg/storage"
	"github.com/aretw0/valueprop/pkg/wizard"
)

// Wizard is the high-level entry point: a session store already restored from
// and mirrored to a key-value store, plus the sequencer driving it.
type Wizard struct {
	Store       *session.Store
	Sequencer   *wizard.Sequencer
	Persistence *persistence.Adapter
	Storage     *storage.Namespace

	kv     ports.KVStore
	hooks  domain.LifecycleHooks
	onSave func(error)
	key    string
	logger *slog.Logger
}

// Option defines a functional option for configuring the Wizard.
type Option func(*Wizard)

// WithKVStore sets the backing store. Defaults to an in-memory store.
func WithKVStore(kv ports.KVStore) Option {
	return func(w *Wizard) {
		w.kv = kv
	}
}

// WithLifecycleHooks registers observability hooks on the session store.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithSaveObserver is called after every persistence write with its result.
func WithSaveObserver(fn func(error)) Option {
	return func(w *Wizard) {
		w.onSave = fn
	}
}

// WithPersistenceKey overrides the key holding the answer record.
func WithPersistenceKey(key string) Option {
	return func(w *Wizard) {
		w.key = key
	}
}

// New builds a Wizard and restores any saved answers before enabling saves.
func New(ctx context.Context, opts ...Option) *Wizard {
	w := &Wizard{
		key:    persistence.DefaultKey,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.kv == nil {
		w.kv = memory.NewStore()
	}

	w.Store = session.NewStore(
		session.WithLifecycleHooks(w.hooks),
		session.WithLogger(w.logger),
	)

	adapterOpts := []persistence.Option{
		persistence.WithKey(w.key),
		persistence.WithLogger(w.logger),
	}
	if w.onSave != nil {
		adapterOpts = append(adapterOpts, persistence.WithSaveObserver(w.onSave))
	}
	w.Persistence = persistence.NewAdapter(w.kv, adapterOpts...)
	w.Persistence.Bind(ctx, w.Store)

	w.Storage = storage.New(w.kv, storage.WithLogger(w.logger))
	w.Sequencer = wizard.NewSequencer(w.Store)
	return w
}

// KV returns the backing key-value store.
func (w *Wizard) KV() ports.KVStore {
	return w.kv
}
