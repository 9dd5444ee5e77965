package provider

import "sync"

// Registry is the host search surface: it holds at most one active provider.
type Registry struct {
	mu     sync.RWMutex
	active SearchProvider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddProvider makes p the active provider, replacing any previous one.
func (r *Registry) AddProvider(p SearchProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = p
}

// RemoveProvider unregisters p. Removing a provider that is not active does nothing.
func (r *Registry) RemoveProvider(p SearchProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == p {
		r.active = nil
	}
}

// Active returns the active provider, if any.
func (r *Registry) Active() (SearchProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active, r.active != nil
}
