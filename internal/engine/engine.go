package engine

import (
	"sort"
	"sync"
	"time"

	"latentd/internal/adapter"
	"latentd/pkg/types"
)

// Engine owns the registered adapter instances for one serving process.
type Engine struct {
	mu        sync.RWMutex
	instances map[string]*Instance

	defaultModel  string
	maxQueueDepth int
	maxWait       time.Duration
	startTime     time.Time
	evalsTotal    uint64
	err           string
}

// New constructs an Engine from Config, applying package defaults.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		instances:     make(map[string]*Instance),
		defaultModel:  cfg.DefaultModel,
		maxQueueDepth: cfg.MaxQueueDepth,
		maxWait:       cfg.MaxWait,
		startTime:     time.Now(),
	}
}

// Register adds an adapter under id, probing its capability set once. The
// adapter must not change capabilities after this point.
func (e *Engine) Register(id, name, source, path string, m adapter.Model) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.instances[id]; exists {
		return duplicateError{id: id}
	}
	e.instances[id] = &Instance{
		ID:      id,
		Name:    name,
		Source:  source,
		Path:    path,
		Model:   m,
		Caps:    adapter.Probe(m),
		genCh:   make(chan struct{}, 1),
		queueCh: make(chan struct{}, e.maxQueueDepth),
	}
	return nil
}

// resolve maps a request model id (possibly empty) to an instance.
func (e *Engine) resolve(id string) (*Instance, error) {
	if id == "" {
		id = e.defaultModel
		if id == "" {
			return nil, notFoundError{id: "(unspecified)"}
		}
	}
	e.mu.RLock()
	inst := e.instances[id]
	e.mu.RUnlock()
	if inst == nil {
		return nil, notFoundError{id: id}
	}
	return inst, nil
}

// ListModels returns the registered models sorted by id.
func (e *Engine) ListModels() []types.Model {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]types.Model, 0, len(e.instances))
	for _, inst := range e.instances {
		out = append(out, types.Model{
			ID:           inst.ID,
			Name:         inst.Name,
			Path:         inst.Path,
			Source:       inst.Source,
			Capabilities: inst.Caps.Names(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Capabilities returns the cached capability set for id.
func (e *Engine) Capabilities(id string) (adapter.CapabilitySet, error) {
	inst, err := e.resolve(id)
	if err != nil {
		return nil, err
	}
	return inst.Caps, nil
}

// DefaultModel returns the configured default model id ("" if unset).
func (e *Engine) DefaultModel() string { return e.defaultModel }

// Ready reports whether at least one model is registered.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.instances) > 0
}

// SetError records a top-level engine error string surfaced in /status.
func (e *Engine) SetError(msg string) {
	e.mu.Lock()
	e.err = msg
	e.mu.Unlock()
}
