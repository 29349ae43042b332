package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/valueprop"
	"github.com/aretw0/valueprop/internal/config"
	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/pkg/adapters/file"
	"github.com/aretw0/valueprop/pkg/adapters/memory"
	"github.com/aretw0/valueprop/pkg/adapters/redis"
	"github.com/aretw0/valueprop/pkg/persistence/middleware"
	"github.com/aretw0/valueprop/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "valueprop",
	Short: "valueprop guides you through crafting a value proposition",
	Long: `valueprop is a five-step wizard: context, assets, quantified results, financial impact
and the final statement. Answers are saved as you go and can be exported as a summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// flagKeys maps command-line flags onto dotted config keys.
var flagKeys = map[string]string{
	"log-level":      "log_level",
	"backend":        "storage.backend",
	"storage-dir":    "storage.dir",
	"redis-addr":     "storage.redis.addr",
	"encryption-key": "storage.encryption_key",
	"port":           "http.port",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./"+config.DefaultPath+" when present)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("backend", "", "Storage backend: memory, file or redis")
	pf.String("storage-dir", "", "Directory for the file backend")
	pf.String("redis-addr", "", "Redis address for the redis backend")
	pf.String("encryption-key", "", "Hex-encoded 32-byte key to encrypt stored answers")
}

// loadConfig resolves the config file plus any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	overrides := map[string]any{}
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	return config.Load(path, overrides)
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// openKV builds the configured backend, wrapped with encryption when a key is set.
// The returned close function releases backend connections.
func openKV(ctx context.Context, cfg config.Config) (ports.KVStore, func() error, error) {
	var (
		kv      ports.KVStore
		closeFn = func() error { return nil }
	)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		kv = memory.NewStore()
	case config.BackendFile:
		kv = file.New(cfg.Storage.Dir)
	case config.BackendRedis:
		r := cfg.Storage.Redis
		rs := redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", r.Addr, err)
		}
		kv, closeFn = rs, rs.Close
	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Storage.Backend)
	}

	key, err := cfg.EncryptionKey()
	if err != nil {
		return nil, nil, err
	}
	if key != nil {
		fallbacks, err := cfg.DecryptionFallbackKeys()
		if err != nil {
			return nil, nil, err
		}
		mw, err := middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: key, FallbackKeys: fallbacks})
		if err != nil {
			return nil, nil, err
		}
		kv = mw(kv)
	}
	return kv, closeFn, nil
}

// setup loads config and returns a restored Wizard. Callers must run the close function.
func setup(cmd *cobra.Command, opts ...valueprop.Option) (*valueprop.Wizard, *slog.Logger, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	return setupWithConfig(cmd, cfg, opts...)
}

// setupWithConfig is setup for commands that already hold a loaded config.
func setupWithConfig(cmd *cobra.Command, cfg config.Config, opts ...valueprop.Option) (*valueprop.Wizard, *slog.Logger, func() error, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	kv, closeFn, err := openKV(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append([]valueprop.Option{valueprop.WithKVStore(kv), valueprop.WithLogger(logger)}, opts...)
	return valueprop.New(cmd.Context(), opts...), logger, closeFn, nil
}
