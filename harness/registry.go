package harness

import (
	"fmt"
	"sync"
)

var (
	registryMu sync.Mutex
	registry   []*Family
)

// Register adds f to the process-wide family registry, the mechanism
// test files use from an init() func to make themselves visible to
// cmd/sequoia's main without either side importing the other directly.
// Register panics if a family with the same name is already registered:
// a duplicate factory key is a framework-misuse error, and init() has no
// error return to propagate one through.
func Register(f *Family) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, existing := range registry {
		if existing.Name == f.Name {
			panic(fmt.Errorf("%w: family %q", ErrDuplicateSelection, f.Name))
		}
	}
	registry = append(registry, f)
}

// Registered returns a snapshot of every family registered so far.
func Registered() []*Family {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Family, len(registry))
	copy(out, registry)
	return out
}
