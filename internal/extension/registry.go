package extension

import (
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Extension{}
)

// Register makes ext resolvable by name. Registering an existing name replaces it.
// Builds that bundle their own policies call this from an init function.
func Register(name string, ext Extension) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ext
}

// Unregister removes a registered extension.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Lookup returns the extension registered under name.
func Lookup(name string) (Extension, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ext, ok := registry[name]
	return ext, ok
}

// Registered returns the sorted names of all registered extensions.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
