package ports

import "go.trai.ch/weft/internal/core/domain"

// DescriptorStore memoizes fully decoded tag helper descriptors by their
// producer-supplied content checksum. A hit must be semantically identical to a full
// decode of the same content; the reader trusts the checksum unconditionally and
// performs no re-validation on a hit. Implementations must support concurrent
// Get/Set from independent decode calls; racing Sets for the same checksum may land
// in either order since both carry equivalent values.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DescriptorStore interface {
	// Get retrieves the descriptor cached under checksum.
	// Returns nil, false when not present.
	Get(checksum domain.Checksum) (*domain.TagHelperDescriptor, bool)

	// Set stores a descriptor under its checksum.
	Set(checksum domain.Checksum, descriptor *domain.TagHelperDescriptor)
}
