package category

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Registry maps identifiers to categories
type Registry struct {
	categories sync.Map
	mu         sync.Mutex // serializes Close against Register
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a category under id. An existing registration is an error.
func (r *Registry) Register(id string, c Category) error {
	if id == "" {
		return fmt.Errorf("category ID cannot be empty")
	}
	if c == nil {
		return fmt.Errorf("category %q is nil", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, loaded := r.categories.LoadOrStore(id, c); loaded {
		return fmt.Errorf("category already registered: %s", id)
	}
	return nil
}

// Unregister removes a category and returns it
func (r *Registry) Unregister(id string) (Category, bool) {
	val, ok := r.categories.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	return val.(Category), true
}

// Get retrieves a category by ID
func (r *Registry) Get(id string) (Category, bool) {
	val, ok := r.categories.Load(id)
	if !ok {
		return nil, false
	}
	return val.(Category), true
}

// List returns registered IDs in sorted order
func (r *Registry) List() []string {
	var ids []string
	r.categories.Range(func(key, _ interface{}) bool {
		ids = append(ids, key.(string))
		return true
	})
	sort.Strings(ids)
	return ids
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, closable int
	r.categories.Range(func(_, value interface{}) bool {
		total++
		if _, ok := value.(io.Closer); ok {
			closable++
		}
		return true
	})

	return map[string]interface{}{
		"total_categories": total,
		"closable":         closable,
	}
}

// Close removes every category and closes those that implement io.Closer.
// All close errors are reported.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result *multierror.Error
	for _, id := range r.List() {
		c, ok := r.Unregister(id)
		if !ok {
			continue
		}
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("close %s: %w", id, err))
			}
		}
	}
	return result.ErrorOrNil()
}
