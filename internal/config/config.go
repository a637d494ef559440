// Package config loads nodeflow configuration from TOML.
//
// Configuration lives in a single file, by default
// ~/.config/nodeflow/config.toml, with sections for logging, the HTTP
// server, and the graph store:
//
//	[log]
//	level = "info"   # debug, info, warn, error
//	format = "text"  # text or json
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "file" # memory, file, redis, mongo
//	dir = ""         # file backend: storage directory
//
//	[store.redis]
//	addr = "localhost:6379"
//	key_prefix = "nodeflow"
//
//	[store.mongo]
//	uri = "mongodb://localhost:27017"
//	database = "nodeflow"
//	collection = "graphs"
//
// A missing file is not an error: [Load] returns the defaults. A present
// file only needs the keys it wants to change.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/parametriclab/nodeflow/pkg/store"
)

// Config is the root configuration.
type Config struct {
	Log    Log    `toml:"log"`
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
}

// Log configures logging output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Server configures the HTTP API server.
type Server struct {
	Addr string `toml:"addr"`
}

// Store selects and configures the graph store backend.
type Store struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

// Redis configures the redis store backend.
type Redis struct {
	Addr      string `toml:"addr"`
	KeyPrefix string `toml:"key_prefix"`
}

// Mongo configures the mongo store backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Log:    Log{Level: "info", Format: "text"},
		Server: Server{Addr: ":8080"},
		Store:  Store{Backend: store.BackendFile},
	}
}

// DefaultPath returns the default configuration file location,
// <user config dir>/nodeflow/config.toml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "nodeflow", "config.toml"), nil
}

// Load reads the configuration at path, applying it over the defaults. An
// empty path falls back to [DefaultPath]. A missing file returns the
// defaults without error; a present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// StoreOptions maps the store section onto the options [store.Open] takes.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:    c.Store.Backend,
		Dir:        c.Store.Dir,
		Addr:       c.Store.Redis.Addr,
		KeyPrefix:  c.Store.Redis.KeyPrefix,
		URI:        c.Store.Mongo.URI,
		Database:   c.Store.Mongo.Database,
		Collection: c.Store.Mongo.Collection,
	}
}
