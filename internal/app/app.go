// Package app implements the application layer for weft.
package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/weft/internal/adapters/cache"
	"go.trai.ch/weft/internal/adapters/cas"
	"go.trai.ch/weft/internal/adapters/config"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/adapters/watcher"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/builder"
	"go.trai.ch/weft/internal/engine/reader"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader *config.Loader
	logger       ports.Logger
	interner     *cache.Interner
	builders     *builder.Pool
	store        ports.DescriptorStore
	watcher      ports.Watcher
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(
	loader *config.Loader,
	log ports.Logger,
	interner *cache.Interner,
	builders *builder.Pool,
	store ports.DescriptorStore,
	w ports.Watcher,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		interner:     interner,
		builders:     builders,
		store:        store,
		watcher:      w,
		tracer:       tracer,
	}
}

// DecodeOptions configuration for the Decode method.
type DecodeOptions struct {
	NoCache bool
}

// Decode reads each descriptor set file and reports what it contains. Files are
// decoded concurrently; the shared caches make repeated descriptors across files
// converge to the same instances.
func (a *App) Decode(ctx context.Context, paths []string, opts DecodeOptions) error {
	host, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(paths) == 0 {
		return domain.ErrNoInputsSpecified
	}

	a.applyLogConfig(host)

	tracer, shutdown := a.setupTracer(host)
	defer func() {
		_ = shutdown(ctx)
	}()

	session := a.newSession(host, tracer, opts.NoCache)

	sets := make([]*domain.DescriptorSet, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			set, err := a.decodeFile(ctx, session, path)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, set := range sets {
		a.logSummary(paths[i], set)
	}
	return nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	NoCache bool
}

// Watch decodes the given descriptor set files, then re-decodes each file as it
// changes on disk until the context is cancelled.
func (a *App) Watch(ctx context.Context, paths []string, opts WatchOptions) error {
	host, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(paths) == 0 {
		return domain.ErrNoInputsSpecified
	}

	a.applyLogConfig(host)

	tracer, shutdown := a.setupTracer(host)
	defer func() {
		_ = shutdown(ctx)
	}()

	session := a.newSession(host, tracer, opts.NoCache)

	for _, path := range paths {
		if set, err := a.decodeFile(ctx, session, path); err != nil {
			a.logger.Error(err)
		} else {
			a.logSummary(path, set)
		}
	}

	if err := a.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	window := watcher.DefaultDebounceWindow
	if host.DebounceMillis > 0 {
		window = time.Duration(host.DebounceMillis) * time.Millisecond
	}
	debouncer := watcher.NewDebouncer(window, func(changed []string) {
		for _, path := range changed {
			if set, err := a.decodeFile(ctx, session, path); err != nil {
				a.logger.Error(err)
			} else {
				a.logSummary(path, set)
			}
		}
	})

	for event := range a.watcher.Events() {
		if event.Operation == ports.OpRemove {
			a.logger.Warn(fmt.Sprintf("%s was removed", event.Path))
			continue
		}
		debouncer.Add(event.Path)
	}
	debouncer.Flush()
	return ctx.Err()
}

// newSession builds a decode session over the process-wide caches, honoring the
// host caching switch and the per-invocation override. A configured cacheDir
// swaps the in-memory result cache for the persistent one.
func (a *App) newSession(host config.Host, tracer ports.Tracer, noCache bool) *reader.Session {
	session := reader.NewSession(a.interner, a.builders).
		WithLogger(a.logger).
		WithTracer(tracer)
	if !host.Caching || noCache {
		return session
	}
	if host.CacheDir != "" {
		persistent, err := cas.NewStore(host.CacheDir, a.logger)
		if err == nil {
			return session.WithStore(persistent)
		}
		a.logger.Error(err)
	}
	return session.WithStore(a.store)
}

func (a *App) decodeFile(ctx context.Context, session *reader.Session, path string) (*domain.DescriptorSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrSetOpenFailed, err.Error())
	}
	defer func() {
		_ = f.Close()
	}()

	set, err := session.DecodeSet(ctx, bufio.NewReader(f))
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("failed to decode %s", path))
	}
	return set, nil
}

func (a *App) logSummary(path string, set *domain.DescriptorSet) {
	unknown := 0
	for _, d := range set.TagHelpers {
		if d.IsUnknown() {
			unknown++
		}
	}
	msg := fmt.Sprintf("%s: %d tag helpers, %d diagnostics", path, len(set.TagHelpers), len(set.Diagnostics))
	if unknown > 0 {
		a.logger.Warn(fmt.Sprintf("%s (%d unreadable)", msg, unknown))
		return
	}
	a.logger.Info(msg)
}

// applyLogConfig pushes host log settings into the logger when the concrete
// implementation supports them.
func (a *App) applyLogConfig(host config.Host) {
	if host.JSONLogs {
		if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
			l.SetJSON(true)
		}
	}
}

// setupTracer returns the tracer to decode with. Tracing is off unless the host
// enables it; the returned shutdown flushes the provider on exit.
func (a *App) setupTracer(host config.Host) (ports.Tracer, func(context.Context) error) {
	if !host.Tracing {
		return a.tracer, func(context.Context) error { return nil }
	}
	shutdown := telemetry.Setup()
	return telemetry.NewOTelTracer("weft"), shutdown
}
