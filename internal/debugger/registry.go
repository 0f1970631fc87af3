// Package debugger keeps the debugger settings of every registered toolchain
// for the launch configuration collaborator.
package debugger

import (
	"sort"
	"sync"

	"brtoolchain/internal/ident"
	"brtoolchain/internal/tools"
)

// Config is the debugger setup of one toolchain.
type Config struct {
	Prefix    string `json:"prefix"`
	SolibPath string `json:"solib_path"`
	DebugName string `json:"debug_name"`
}

// Registry maps a toolchain name, as built by ident.ToolName without a
// description, to its debugger configuration. It lives as long as the startup
// session that owns it.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Config
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Config)}
}

// Key returns the name a toolchain is registered under.
func Key(architecture, path string) string {
	return ident.ToolName(architecture, path, "")
}

// Register stores the debugger configuration of a toolchain and returns its
// key. Registering the same toolchain twice overwrites the entry.
func (r *Registry) Register(architecture, prefix, path string) string {
	key := Key(architecture, path)
	cfg := Config{
		Prefix:    prefix,
		SolibPath: path,
		DebugName: tools.BinaryPath(path, prefix, tools.Debugger),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]Config)
	}
	r.entries[key] = cfg
	return key
}

// Lookup returns the configuration registered under name. A missing entry
// means name is not a managed toolchain.
func (r *Registry) Lookup(name string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.entries[name]
	return cfg, ok
}

// SolibPath returns the shared library search path of a toolchain.
func (r *Registry) SolibPath(name string) (string, bool) {
	cfg, ok := r.Lookup(name)
	return cfg.SolibPath, ok
}

// DebugName returns the debugger executable of a toolchain.
func (r *Registry) DebugName(name string) (string, bool) {
	cfg, ok := r.Lookup(name)
	return cfg.DebugName, ok
}

// Names returns the registered keys in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered toolchains.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear drops every entry. Called when the session stops.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]Config)
}
