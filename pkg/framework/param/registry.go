package param

import (
	"fmt"
	"sync"
)

// Registry indexes parameters by ID and name.
// It is used from the control thread; the audio thread holds direct pointers.
type Registry struct {
	params map[uint32]*Parameter
	names  map[string]uint32
	order  []uint32 // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		names:  make(map[string]uint32),
		order:  make([]uint32, 0),
	}
}

// Add registers parameters, rejecting duplicate IDs and names.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if existing, exists := r.params[p.ID]; exists {
			return fmt.Errorf("parameter ID %d already used by %q", p.ID, existing.Name)
		}
		if _, exists := r.names[p.Name]; exists {
			return fmt.Errorf("parameter name %q already registered", p.Name)
		}
		r.params[p.ID] = p
		r.names[p.Name] = p.ID
		r.order = append(r.order, p.ID)
	}

	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// Lookup retrieves a parameter by name.
func (r *Registry) Lookup(name string) (*Parameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return r.params[id], true
}

// Set stores a plain value on the named parameter.
func (r *Registry) Set(name string, plain float32) error {
	p, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	p.SetPlain(plain)
	return nil
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns all parameters in registration order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}
