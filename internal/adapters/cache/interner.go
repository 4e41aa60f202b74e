// Package cache implements the process-wide in-memory caches shared by decode calls.
package cache

import "sync"

// Interner canonicalizes equal-content strings to one shared instance. Tag helper
// descriptors repeat identical substrings (namespaces, type names, attribute names)
// across thousands of entries; interning bounds heap use to the distinct-value count
// instead of the occurrence count.
//
// The table never evicts. Unbounded growth over the process lifetime is an accepted
// tradeoff: the distinct-value population of a project is small and stable.
type Interner struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInterner creates an empty Interner. One instance is constructed at host start
// and passed explicitly to every decode session.
func NewInterner() *Interner {
	return &Interner{values: make(map[string]string)}
}

// GetOrAdd returns the canonical instance for s. The first insertion wins; every
// later call with equal content converges to that instance regardless of the order
// racing inserts land in.
func (i *Interner) GetOrAdd(s string) string {
	i.mu.RLock()
	canonical, ok := i.values[s]
	i.mu.RUnlock()
	if ok {
		return canonical
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if canonical, ok := i.values[s]; ok {
		return canonical
	}
	i.values[s] = s
	return s
}

// Len returns the number of distinct strings held.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.values)
}
