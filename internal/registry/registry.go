// Package registry maps analyzer names to their constructors. A Registry is
// an explicitly owned value passed into the pipeline, not hidden package
// state, so tests can build isolated registries.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lexiscan/lexiscan/internal/analysis"
)

// Factory constructs a ready-to-run analyzer instance.
type Factory func() (analysis.Analyzer, error)

// Descriptor is the immutable registration record for one analyzer.
type Descriptor struct {
	Name    string
	Kind    analysis.Kind
	Factory Factory
}

// DuplicateAnalyzerError reports a second registration under the same name.
type DuplicateAnalyzerError struct {
	Name string
}

func (e *DuplicateAnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %q is already registered", e.Name)
}

// InvalidDescriptorError reports a registration with an empty name or nil
// factory.
type InvalidDescriptorError struct {
	Reason string
}

func (e *InvalidDescriptorError) Error() string {
	return "invalid analyzer descriptor: " + e.Reason
}

// UnknownAnalyzerError reports a lookup for a name never registered.
type UnknownAnalyzerError struct {
	Name  string
	Known []string
}

func (e *UnknownAnalyzerError) Error() string {
	return fmt.Sprintf("unknown analyzer %q; known: %s", e.Name, strings.Join(e.Known, ", "))
}

// Registry holds analyzer descriptors keyed by unique name. Registration
// happens single-threaded at startup by convention; lookups afterwards are
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Descriptor)}
}

// Register records a factory under a unique name. The first registration
// wins; a duplicate name is rejected and the registry is unchanged.
func (r *Registry) Register(name string, kind analysis.Kind, factory Factory) error {
	if name == "" {
		return &InvalidDescriptorError{Reason: "empty name"}
	}
	if factory == nil {
		return &InvalidDescriptorError{Reason: "nil factory for " + name}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return &DuplicateAnalyzerError{Name: name}
	}
	r.entries[name] = Descriptor{Name: name, Kind: kind, Factory: factory}
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.entries[name]
	if !ok {
		return Descriptor{}, &UnknownAnalyzerError{Name: name, Known: r.namesLocked()}
	}
	return desc, nil
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
