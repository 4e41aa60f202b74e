package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weft/internal/adapters/cache"
	"go.trai.ch/weft/internal/adapters/config"
	"go.trai.ch/weft/internal/adapters/logger"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/adapters/watcher"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/builder"
)

// Components bundles the fully wired application surface handed to the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			cache.InternerNodeID,
			cache.StoreNodeID,
			builder.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[*config.Loader](ctx)
			if err != nil {
				return nil, err
			}
			interner, err := graft.Dep[*cache.Interner](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.DescriptorStore](ctx)
			if err != nil {
				return nil, err
			}
			builders, err := graft.Dep[*builder.Pool](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, log, interner, builders, store, w, tracer),
				Logger: log,
			}, nil
		},
	})
}
