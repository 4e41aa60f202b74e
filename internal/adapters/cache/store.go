package cache

import (
	"sync"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

var _ ports.DescriptorStore = (*DescriptorStore)(nil)

// DescriptorStore is the in-memory implementation of ports.DescriptorStore.
//
// Trust assumption: lookups are keyed solely by the producer-supplied content
// checksum. A hit is returned without re-validating the remaining bytes of the
// encoded object, so a checksum collision or a stale entry silently yields wrong
// data. That risk is accepted; the producer owns checksum integrity.
type DescriptorStore struct {
	mu      sync.RWMutex
	entries map[domain.Checksum]*domain.TagHelperDescriptor
}

// NewDescriptorStore creates an empty DescriptorStore.
func NewDescriptorStore() *DescriptorStore {
	return &DescriptorStore{entries: make(map[domain.Checksum]*domain.TagHelperDescriptor)}
}

// Get retrieves the descriptor cached under checksum.
func (s *DescriptorStore) Get(checksum domain.Checksum) (*domain.TagHelperDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.entries[checksum]
	return d, ok
}

// Set stores a descriptor under its checksum. Racing Sets for the same checksum
// carry semantically identical values, so last-write-wins is fine.
func (s *DescriptorStore) Set(checksum domain.Checksum, descriptor *domain.TagHelperDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[checksum] = descriptor
}

// Len returns the number of cached descriptors.
func (s *DescriptorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
