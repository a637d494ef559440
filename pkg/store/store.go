// Package store provides named persistence for graph documents.
//
// A [Store] keeps one [Record] per graph name, with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable deployments
//
// # Usage
//
// Create a store directly:
//
//	// Development
//	s := store.NewMemoryStore()
//
//	// CLI
//	s, err := store.NewFileStore("")  // Uses ~/.config/nodeflow/graphs/
//
//	// Server
//	s, err := store.NewRedisStore("localhost:6379")
//
// or let [Open] pick the backend from configuration. Store and load graphs:
//
//	rec := store.Record{Name: "bracket", Document: document.FromGraph(g)}
//	if err := s.Put(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := s.Get(ctx, "bracket")
//	if errors.Is(err, store.ErrNotFound) {
//	    // No graph by that name.
//	}
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parametriclab/nodeflow/pkg/document"
)

// ErrNotFound is returned by [Store.Get] and [Store.Delete] when no record
// exists under the requested name.
var ErrNotFound = errors.New("not found")

// Record is one stored graph: its name (the storage key), the serialized
// document, and bookkeeping timestamps maintained by [Store.Put].
type Record struct {
	Name      string            `json:"name" bson:"name"`
	Document  document.Document `json:"document" bson:"document"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Store is the interface for graph persistence backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Get retrieves a stored graph by name.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, name string) (Record, error)

	// Put stores or replaces a record under rec.Name. It stamps UpdatedAt,
	// and preserves the original CreatedAt when overwriting.
	Put(ctx context.Context, rec Record) error

	// List returns the stored graph names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a record.
	// Returns ErrNotFound if no record exists.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// Backend names understood by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend for [Open]. Zero values fall back
// to each backend's defaults.
type Options struct {
	Backend    string // "memory", "file", "redis", or "mongo"
	Dir        string // file: storage directory
	Addr       string // redis: host:port
	KeyPrefix  string // redis: key namespace
	URI        string // mongo: connection string
	Database   string // mongo: database name
	Collection string // mongo: collection name
}

// Open creates the store selected by opts.Backend. An empty backend opens the
// memory store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		var ropts []RedisOption
		if opts.KeyPrefix != "" {
			ropts = append(ropts, WithKeyPrefix(opts.KeyPrefix))
		}
		return NewRedisStore(opts.Addr, ropts...)
	case BackendMongo:
		return NewMongoStore(ctx, opts.URI, opts.Database, opts.Collection)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// stamp fills rec's timestamps for a write: UpdatedAt is always now, and
// CreatedAt carries over from prev when the record already existed.
func stamp(rec *Record, prev *Record) {
	now := time.Now().UTC()
	rec.UpdatedAt = now
	if prev != nil && !prev.CreatedAt.IsZero() {
		rec.CreatedAt = prev.CreatedAt
		return
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
}
