package drag

import (
	"sort"
	"sync"

	"github.com/huangsam/hotelpulse/schema"
)

// Registry keeps one controller per chart.
type Registry struct {
	mu          sync.RWMutex
	deps        Deps
	controllers map[string]*Controller
}

// NewRegistry creates an empty registry whose controllers share deps.
func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, controllers: make(map[string]*Controller)}
}

// Bind rebinds the chart's controller to annotations, creating it on first use.
func (r *Registry) Bind(chartID string, annotations []schema.Annotation) *Controller {
	r.mu.Lock()
	c, ok := r.controllers[chartID]
	if !ok {
		c = NewController(chartID, r.deps)
		r.controllers[chartID] = c
	}
	r.mu.Unlock()

	c.Bind(annotations)
	return c
}

// Get returns the controller of a chart if it was ever bound.
func (r *Registry) Get(chartID string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[chartID]
	return c, ok
}

// Charts lists the bound chart identifiers, sorted.
func (r *Registry) Charts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.controllers))
	for id := range r.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
