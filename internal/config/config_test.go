package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parametriclab/nodeflow/pkg/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[server]
addr = ":9090"

[store]
backend = "redis"

[store.redis]
addr = "redis.internal:6379"
key_prefix = "cad"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want the text default to survive", cfg.Log.Format)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("Store.Backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.Redis.Addr != "redis.internal:6379" {
		t.Errorf("Store.Redis.Addr = %q", cfg.Store.Redis.Addr)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, "level = [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Load accepted invalid TOML")
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := Config{
		Store: Store{
			Backend: "mongo",
			Dir:     "/tmp/graphs",
			Redis:   Redis{Addr: "localhost:6379", KeyPrefix: "nf"},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: "cad", Collection: "sketches"},
		},
	}

	want := store.Options{
		Backend:    "mongo",
		Dir:        "/tmp/graphs",
		Addr:       "localhost:6379",
		KeyPrefix:  "nf",
		URI:        "mongodb://localhost:27017",
		Database:   "cad",
		Collection: "sketches",
	}
	if got := cfg.StoreOptions(); got != want {
		t.Errorf("StoreOptions = %+v, want %+v", got, want)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("DefaultPath = %q, want a config.toml path", path)
	}
}
