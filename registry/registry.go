// Package registry associates named (stage renderer, 3D scene) pairs and
// tracks which one is active.
//
// The registry is an opt-in convenience for hosts juggling several renderer
// pairs: a bridge texture constructed without explicit references falls back
// to the active entry. Explicit references remain the primary path and
// bypass the registry entirely. Entries are only ever added and removed by
// the host application, never implicitly.
package registry

import (
	"sort"
	"sync"

	pixibabylon "github.com/littleboarx/pixi-babylon"
)

// Entry is one registered (stage renderer, scene) pair.
type Entry struct {
	// Name is the unique identifier for this pair.
	Name string

	// Stage is the 2D stage renderer of the pair.
	Stage pixibabylon.StageRenderer

	// Scene is the 3D scene of the pair.
	Scene pixibabylon.Scene
}

// NotFoundError indicates a named context is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "registry: context not found: " + e.Name
}

// defaultRegistry backs the package-level functions.
var defaultRegistry = NewRegistry()

// Registry manages named renderer pairs with at most one active entry.
// The zero value is not ready for use; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	active  string
}

// NewRegistry creates a new empty registry. Most code should use the
// package-level functions, which operate on a shared default registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register inserts or overwrites the entry for name in the default registry.
func Register(name string, stage pixibabylon.StageRenderer, scene pixibabylon.Scene) {
	defaultRegistry.Register(name, stage, scene)
}

// SwitchTo marks the named entry active in the default registry.
func SwitchTo(name string) error {
	return defaultRegistry.SwitchTo(name)
}

// Unregister removes the named entry from the default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// Active returns the active entry of the default registry.
func Active() (*Entry, bool) {
	return defaultRegistry.Active()
}

// Get returns the named entry of the default registry.
func Get(name string) (*Entry, bool) {
	return defaultRegistry.Get(name)
}

// List returns the names registered in the default registry.
func List() []string {
	return defaultRegistry.List()
}

// Register inserts or overwrites the entry for name. Overwriting the
// active entry keeps it active with the new references.
func (r *Registry) Register(name string, stage pixibabylon.StageRenderer, scene pixibabylon.Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &Entry{Name: name, Stage: stage, Scene: scene}
}

// SwitchTo marks the named entry active, making it the implicit source for
// bridge textures constructed without explicit references. If name is
// absent, a NotFoundError is returned and the active entry is unchanged.
func (r *Registry) SwitchTo(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return &NotFoundError{Name: name}
	}
	r.active = name
	return nil
}

// Unregister removes the named entry. If it was active, the active pointer
// is cleared and implicit lookups fail until another SwitchTo.
// Removing an absent name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
	if r.active == name {
		r.active = ""
	}
}

// Active returns the active entry, or false if none is active.
func (r *Registry) Active() (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == "" {
		return nil, false
	}
	entry, ok := r.entries[r.active]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// Get returns the named entry, or false if it is absent.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	// Return a copy to prevent modification.
	entryCopy := *entry
	return &entryCopy, true
}

// List returns all registered names, sorted for determinism.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
