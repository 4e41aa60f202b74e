package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weft/internal/core/ports"
)

const (
	// InternerNodeID is the unique identifier for the string interner Graft node.
	InternerNodeID graft.ID = "adapter.interner"
	// StoreNodeID is the unique identifier for the descriptor store Graft node.
	StoreNodeID graft.ID = "adapter.descriptor_store"
)

func init() {
	graft.Register(graft.Node[*Interner]{
		ID:        InternerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Interner, error) {
			return NewInterner(), nil
		},
	})

	graft.Register(graft.Node[ports.DescriptorStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptorStore, error) {
			return NewDescriptorStore(), nil
		},
	})
}
