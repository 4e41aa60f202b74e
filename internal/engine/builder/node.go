package builder

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the builder pool Graft node.
const NodeID graft.ID = "engine.builder_pool"

func init() {
	graft.Register(graft.Node[*Pool]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Pool, error) {
			return NewPool(), nil
		},
	})
}
