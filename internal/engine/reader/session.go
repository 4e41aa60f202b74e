package reader

import (
	"context"
	"io"

	"go.trai.ch/weft/internal/adapters/cache"
	"go.trai.ch/weft/internal/adapters/wire"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/builder"
	"go.trai.ch/zerr"
)

// Session decodes descriptor objects against the process-wide caches. A Session is
// safe for concurrent use: each decode call owns its own Reader, and the shared
// interner, store, and builder pool are concurrency-safe.
type Session struct {
	interner *cache.Interner
	builders *builder.Pool
	store    ports.DescriptorStore
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewSession creates a Session over the given interner and builder pool.
func NewSession(interner *cache.Interner, builders *builder.Pool) *Session {
	return &Session{interner: interner, builders: builders}
}

// WithStore opts the session into checksum-keyed result caching.
func (s *Session) WithStore(store ports.DescriptorStore) *Session {
	s.store = store
	return s
}

// WithTracer attaches a tracer for per-set decode spans.
func (s *Session) WithTracer(t ports.Tracer) *Session {
	s.tracer = t
	return s
}

// WithLogger attaches a logger.
func (s *Session) WithLogger(l ports.Logger) *Session {
	s.logger = l
	return s
}

// intern routes a decoded string through the shared interning cache.
func (s *Session) intern(v string) string {
	return s.interner.GetOrAdd(v)
}

func (s *Session) warn(msg string) {
	if s.logger != nil {
		s.logger.Warn(msg)
	}
}

type setRecord struct {
	session *Session
	set     domain.DescriptorSet
}

var setProperties = propertyMap[setRecord]{
	propVersion: func(r *wire.Reader, rec *setRecord) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		rec.set.Version = v
		return nil
	},
	propConfiguration: func(r *wire.Reader, rec *setRecord) error {
		cfg, ok, err := rec.session.readNilableConfiguration(r)
		if err != nil {
			return err
		}
		if ok {
			rec.set.Configuration = &cfg
		}
		return nil
	},
	propTagHelpers: func(r *wire.Reader, rec *setRecord) error {
		_, err := r.ReadArray(func() error {
			d, err := rec.session.readTagHelperValue(r)
			if err != nil {
				return err
			}
			if d.IsUnknown() {
				rec.session.warn("skipped an unreadable tag helper")
			}
			rec.set.TagHelpers = append(rec.set.TagHelpers, d)
			return nil
		})
		return err
	},
	propDiagnostics: func(r *wire.Reader, rec *setRecord) error {
		return rec.session.ReadDiagnosticsInto(r, &rec.set.Diagnostics)
	},
}

// DecodeSet decodes one descriptor set document from src. The stream must be
// buffered; decoding is single-pass with no retry, so a caller wanting to retry
// must re-acquire a fresh stream.
func (s *Session) DecodeSet(ctx context.Context, src io.Reader) (*domain.DescriptorSet, error) {
	var span ports.Span
	if s.tracer != nil {
		_, span = s.tracer.Start(ctx, "weft.decode_set")
		defer span.End()
	}

	r := wire.NewReader(src)
	rec := setRecord{session: s}
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, setProperties, &rec)
	})
	if err == nil && rec.set.Version != domain.SetFormatVersion {
		err = zerr.With(domain.ErrUnsupportedVersion, "version", rec.set.Version)
	}
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return nil, err
	}
	if span != nil {
		span.SetAttribute("tag_helpers", len(rec.set.TagHelpers))
	}
	return &rec.set, nil
}
