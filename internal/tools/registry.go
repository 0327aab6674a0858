// ABOUTME: Insertion-ordered registry of tool descriptors keyed by name.
// ABOUTME: Assembled once at startup from domain packs; immutable afterwards.

package tools

import (
	"log/slog"
	"sync"
)

// Registry maps tool names to descriptors. Registration is last-write-wins:
// a later registration under an existing name silently replaces the earlier
// descriptor while keeping its position in the listing order. The registry is
// assembled once at startup and only read afterwards; the lock exists so that
// concurrent listing during assembly is still safe.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	tools  map[string]Tool
	logger *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register inserts or overwrites the entry for t.Name. A collision is not an
// error — assembly order decides the winner — but it is almost certainly a
// mistake across domain packs, so it is logged at warn level.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		r.logger.Warn("tool name collision, later registration wins", "tool_name", t.Name)
	} else {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// RegisterPack registers every tool in the pack, in order.
func (r *Registry) RegisterPack(p Pack) {
	for _, t := range p.Tools {
		r.Register(t)
	}
	r.logger.Info("pack registered", "pack_id", p.ID, "tool_count", len(p.Tools))
}

// Lookup returns the tool registered under name. Absence is a normal outcome
// handled by the dispatcher, not an exceptional one.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// List returns the descriptors of all registered tools in insertion order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, Descriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Schema,
		})
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
