// Package registry maps node type names to constructors. A [Registry] backs
// both interactive creation (palette search, category browsing) and document
// loading, where persisted type names are resolved back into live nodes.
//
// Registries are plain values wired in by the caller; there is no package
// global. The built-in node kinds live in the nodes package, which registers
// them onto whatever registry it is handed.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

var (
	// ErrUnknownType is returned by [Registry.Create] when no registration
	// exists for the requested type name.
	ErrUnknownType = errors.New("unknown node type")

	// ErrDuplicateType is returned by [Registry.Register] when the type name
	// is already taken.
	ErrDuplicateType = errors.New("duplicate node type")

	// ErrInvalidRegistration is returned by [Registry.Register] when the
	// registration is missing its type name or constructor.
	ErrInvalidRegistration = errors.New("invalid registration")
)

// Registration describes one node kind: its stable type name (the persistence
// key, conventionally "category/name"), the human-facing display name and
// category, and the constructor producing a fresh, id-less node.
type Registration struct {
	TypeName    string
	DisplayName string
	Category    string
	New         func() *graph.Node
}

// Registry is an ordered collection of node kind registrations. Lookups are
// by exact type name; [Registry.Search] and [Registry.ByCategory] return
// registrations in registration order, so palette listings are stable across
// runs.
type Registry struct {
	order  []Registration
	byName map[string]Registration
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]Registration)}
}

// Register adds a node kind. The type name and constructor are required, and
// the type name must not already be registered.
func (r *Registry) Register(reg Registration) error {
	if reg.TypeName == "" || reg.New == nil {
		return fmt.Errorf("%w: need a type name and a constructor", ErrInvalidRegistration)
	}
	if _, ok := r.byName[reg.TypeName]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, reg.TypeName)
	}
	r.byName[reg.TypeName] = reg
	r.order = append(r.order, reg)
	return nil
}

// MustRegister is Register for init-time wiring of built-in kinds, where a
// failure is a programming error.
func (r *Registry) MustRegister(reg Registration) {
	if err := r.Register(reg); err != nil {
		panic(err)
	}
}

// Lookup returns the registration for the exact type name.
func (r *Registry) Lookup(typeName string) (Registration, bool) {
	reg, ok := r.byName[typeName]
	return reg, ok
}

// Create instantiates a node of the given kind and assigns it a fresh uuid.
// It returns [ErrUnknownType] if the type name is not registered.
func (r *Registry) Create(typeName string) (*graph.Node, error) {
	reg, ok := r.byName[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}
	n := reg.New()
	n.SetID(uuid.New().String())
	return n, nil
}

// Types returns every registration in registration order.
func (r *Registry) Types() []Registration {
	return slices.Clone(r.order)
}

// Search returns the registrations whose type name, display name, or category
// contains the query, case-insensitively. An empty query matches everything.
func (r *Registry) Search(query string) []Registration {
	q := strings.ToLower(query)
	var out []Registration
	for _, reg := range r.order {
		if strings.Contains(strings.ToLower(reg.TypeName), q) ||
			strings.Contains(strings.ToLower(reg.DisplayName), q) ||
			strings.Contains(strings.ToLower(reg.Category), q) {
			out = append(out, reg)
		}
	}
	return out
}

// ByCategory returns the registrations in the given category, exact match,
// in registration order.
func (r *Registry) ByCategory(category string) []Registration {
	var out []Registration
	for _, reg := range r.order {
		if reg.Category == category {
			out = append(out, reg)
		}
	}
	return out
}

// Categories returns the distinct categories in sorted order.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, reg := range r.order {
		if reg.Category == "" || seen[reg.Category] {
			continue
		}
		seen[reg.Category] = true
		out = append(out, reg.Category)
	}
	slices.Sort(out)
	return out
}
