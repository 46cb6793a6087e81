package stage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"reel/internal/services"
)

// ErrDuplicateStep is returned when a name is registered twice.
var ErrDuplicateStep = errors.New("duplicate step")

// Registry maps step names to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds h under name.
func (r *Registry) Register(name string, h Handler) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return services.Wrap(services.ErrConfiguration, "registry", "register", "step name is empty", nil)
	}
	if h == nil {
		return services.Wrap(services.ErrConfiguration, "registry", "register", fmt.Sprintf("step %q has no handler", name), nil)
	}
	if _, exists := r.handlers[name]; exists {
		return services.Wrap(services.ErrConfiguration, "registry", "register", fmt.Sprintf("step %q", name), ErrDuplicateStep)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister is Register for initialization routines; it panics on error.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Get returns the handler bound to name. Unknown names produce a not-found
// error listing every registered name.
func (r *Registry) Get(name string) (Handler, error) {
	if h, ok := r.handlers[name]; ok {
		return h, nil
	}
	msg := fmt.Sprintf("unknown step %q (available: %s)", name, strings.Join(r.Names(), ", "))
	return nil, services.Wrap(services.ErrNotFound, "registry", "lookup", msg, nil)
}

// Names returns registered names sorted ascending.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
