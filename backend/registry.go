package backend

import (
	"fmt"
	"strings"

	"github.com/gogpu/gpucontext"
	"golang.org/x/exp/slices"

	"github.com/gogpu/ral/config"
)

// Backend name constants. They match the config.API values that select them.
const (
	NameDX12     = string(config.APIDX12)
	NameVulkan   = string(config.APIVulkan)
	NameSoftware = string(config.APISoftware)
)

// Factory creates a backend instance.
type Factory func() Backend

// priority is the selection order for Default (first registered wins).
var priority = []string{NameDX12, NameVulkan, NameSoftware}

var registry = gpucontext.NewRegistry[Backend](gpucontext.WithPriority(priority...))

// Register registers a backend factory with the given name.
// This is typically called from init() functions.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registry.Register(name, factory)
	slogger().Debug("backend: registered", "name", name)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(name)
}

// Available returns the registered backend names in priority order. Names
// outside the priority list follow in lexical order.
func Available() []string {
	names := registry.Available()
	slices.SortFunc(names, func(a, b string) int {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	return names
}

func rank(name string) int {
	if i := slices.Index(priority, name); i >= 0 {
		return i
	}
	return len(priority)
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	return registry.Get(name)
}

// Resolve returns the backend selected by api.
func Resolve(api config.API) (Backend, error) {
	b := Get(string(api))
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotAvailable, api)
	}
	return b, nil
}

// Default returns the best available backend based on priority.
// Priority order: dx12 (windows only) > vulkan > software.
// Returns nil if no backends are registered.
func Default() Backend {
	return registry.Best()
}
