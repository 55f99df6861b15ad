package main

import (
	"time"

	"github.com/gvpusca/profilesync/internal/cache"
	"github.com/gvpusca/profilesync/internal/config"
	"github.com/gvpusca/profilesync/internal/engine"
	"github.com/gvpusca/profilesync/internal/store"
	"github.com/gvpusca/profilesync/internal/store/httpstore"
	"github.com/gvpusca/profilesync/internal/store/memstore"
)

var (
	configPath string
	useMemory  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use an in-memory remote store (offline demo)")
}

// loadDeps builds the store collaborators every command works with.
func loadDeps() (cfg config.Config, eng *engine.Engine, c cache.Cache, err error) {
	cfg, err = config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	initLogger(cfg.Debug)

	c, err = cache.NewDir(cfg.CacheDir)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	var st store.Store
	if useMemory {
		st = memstore.New()
	} else {
		opts := []httpstore.Option{httpstore.WithReadRetry(5 * time.Second)}
		if cfg.Debug {
			opts = append(opts, httpstore.WithDebugLogging())
		}
		st = httpstore.New(cfg.RemoteURL, opts...)
	}
	return cfg, engine.New(st), c, nil
}
