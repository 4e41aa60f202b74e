package reader

import (
	"errors"

	"go.trai.ch/weft/internal/adapters/wire"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/builder"
)

// tagHelperRecord is the dispatch target for the nested tag helper schema. The
// builder accumulates state; the session provides interning.
type tagHelperRecord struct {
	session *Session
	builder *builder.TagHelper
}

var tagHelperProperties = propertyMap[tagHelperRecord]{
	propDisplayName: func(r *wire.Reader, rec *tagHelperRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.builder.SetDisplayName(rec.session.intern(v))
		}
		return nil
	},
	propDocumentation: func(r *wire.Reader, rec *tagHelperRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.builder.SetDocumentation(rec.session.intern(v))
		}
		return nil
	},
	propTagOutputHint: func(r *wire.Reader, rec *tagHelperRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.builder.SetTagOutputHint(rec.session.intern(v))
		}
		return nil
	},
	propCaseSensitive: func(r *wire.Reader, rec *tagHelperRecord) error {
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		rec.builder.SetCaseSensitive(v)
		return nil
	},
	propTagMatchingRules: func(r *wire.Reader, rec *tagHelperRecord) error {
		_, err := r.ReadArray(func() error {
			rule, err := rec.session.readTagMatchingRule(r)
			if err != nil {
				return err
			}
			rec.builder.AddRule(rule)
			return nil
		})
		return err
	},
	propBoundAttributes: func(r *wire.Reader, rec *tagHelperRecord) error {
		_, err := r.ReadArray(func() error {
			attr, err := rec.session.readBoundAttribute(r)
			if err != nil {
				return err
			}
			rec.builder.AddAttribute(attr)
			return nil
		})
		return err
	},
	propAllowedChildTags: func(r *wire.Reader, rec *tagHelperRecord) error {
		_, err := r.ReadArray(func() error {
			tag, err := rec.session.readAllowedChildTag(r)
			if err != nil {
				return err
			}
			rec.builder.AddChildTag(tag)
			return nil
		})
		return err
	},
	propMetadata: func(r *wire.Reader, rec *tagHelperRecord) error {
		return rec.session.readMetadataInto(r, rec.builder.SetMetadata)
	},
	propDiagnostics: func(r *wire.Reader, rec *tagHelperRecord) error {
		_, err := r.ReadArray(func() error {
			diag, err := rec.session.ReadDiagnostic(r)
			if err != nil {
				return err
			}
			rec.builder.AddDiagnostic(diag)
			return nil
		})
		return err
	},
}

type tagMatchingRuleRecord struct {
	session *Session
	rule    domain.TagMatchingRule
}

var tagMatchingRuleProperties = propertyMap[tagMatchingRuleRecord]{
	propTagName: func(r *wire.Reader, rec *tagMatchingRuleRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.rule.TagName = rec.session.intern(v)
		}
		return nil
	},
	propParentTag: func(r *wire.Reader, rec *tagMatchingRuleRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.rule.ParentTag = rec.session.intern(v)
		}
		return nil
	},
	propTagStructure: func(r *wire.Reader, rec *tagMatchingRuleRecord) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		rec.rule.TagStructure = domain.TagStructure(v)
		return nil
	},
	propCaseSensitive: func(r *wire.Reader, rec *tagMatchingRuleRecord) error {
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		rec.rule.CaseSensitive = v
		return nil
	},
	propAttributes: func(r *wire.Reader, rec *tagMatchingRuleRecord) error {
		_, err := r.ReadArray(func() error {
			attr, err := rec.session.readRequiredAttribute(r)
			if err != nil {
				return err
			}
			rec.rule.Attributes = append(rec.rule.Attributes, attr)
			return nil
		})
		return err
	},
	propDiagnostics: func(r *wire.Reader, rec *tagMatchingRuleRecord) error {
		_, err := r.ReadArray(func() error {
			diag, err := rec.session.ReadDiagnostic(r)
			if err != nil {
				return err
			}
			rec.rule.Diagnostics = append(rec.rule.Diagnostics, diag)
			return nil
		})
		return err
	},
}

type requiredAttributeRecord struct {
	session *Session
	attr    domain.RequiredAttribute
}

var requiredAttributeProperties = propertyMap[requiredAttributeRecord]{
	propName: func(r *wire.Reader, rec *requiredAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.Name = rec.session.intern(v)
		}
		return nil
	},
	propNameComparison: func(r *wire.Reader, rec *requiredAttributeRecord) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		rec.attr.NameComparison = domain.RequiredAttributeNameComparison(v)
		return nil
	},
	propValue: func(r *wire.Reader, rec *requiredAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.Value = rec.session.intern(v)
		}
		return nil
	},
	propValueComparison: func(r *wire.Reader, rec *requiredAttributeRecord) error {
		v, err := r.ReadInt32()
		if err != nil {
			return err
		}
		rec.attr.ValueComparison = domain.RequiredAttributeValueComparison(v)
		return nil
	},
}

type boundAttributeRecord struct {
	session *Session
	attr    domain.BoundAttribute
}

var boundAttributeProperties = propertyMap[boundAttributeRecord]{
	propName: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.Name = rec.session.intern(v)
		}
		return nil
	},
	propTypeName: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.TypeName = rec.session.intern(v)
		}
		return nil
	},
	propIsEnum: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		rec.attr.IsEnum = v
		return nil
	},
	propHasIndexer: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		rec.attr.HasIndexer = v
		return nil
	},
	propIndexerNamePrefix: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.IndexerNamePrefix = rec.session.intern(v)
		}
		return nil
	},
	propIndexerTypeName: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.IndexerTypeName = rec.session.intern(v)
		}
		return nil
	},
	propDisplayName: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.DisplayName = rec.session.intern(v)
		}
		return nil
	},
	propDocumentation: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.attr.Documentation = rec.session.intern(v)
		}
		return nil
	},
	propCaseSensitive: func(r *wire.Reader, rec *boundAttributeRecord) error {
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		rec.attr.CaseSensitive = v
		return nil
	},
	propMetadata: func(r *wire.Reader, rec *boundAttributeRecord) error {
		return rec.session.readMetadataInto(r, func(key string, value *string) {
			if rec.attr.Metadata == nil {
				rec.attr.Metadata = make(domain.MetadataCollection)
			}
			rec.attr.Metadata[key] = value
		})
	},
	propDiagnostics: func(r *wire.Reader, rec *boundAttributeRecord) error {
		_, err := r.ReadArray(func() error {
			diag, err := rec.session.ReadDiagnostic(r)
			if err != nil {
				return err
			}
			rec.attr.Diagnostics = append(rec.attr.Diagnostics, diag)
			return nil
		})
		return err
	},
}

type allowedChildTagRecord struct {
	session *Session
	tag     domain.AllowedChildTag
}

var allowedChildTagProperties = propertyMap[allowedChildTagRecord]{
	propName: func(r *wire.Reader, rec *allowedChildTagRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.tag.Name = rec.session.intern(v)
		}
		return nil
	},
	propDisplayName: func(r *wire.Reader, rec *allowedChildTagRecord) error {
		v, ok, err := r.TryReadString()
		if err != nil {
			return err
		}
		if ok {
			rec.tag.DisplayName = rec.session.intern(v)
		}
		return nil
	},
}

func (s *Session) readTagMatchingRule(r *wire.Reader) (domain.TagMatchingRule, error) {
	rec := tagMatchingRuleRecord{session: s}
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, tagMatchingRuleProperties, &rec)
	})
	return rec.rule, err
}

func (s *Session) readRequiredAttribute(r *wire.Reader) (domain.RequiredAttribute, error) {
	rec := requiredAttributeRecord{session: s}
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, requiredAttributeProperties, &rec)
	})
	return rec.attr, err
}

func (s *Session) readBoundAttribute(r *wire.Reader) (domain.BoundAttribute, error) {
	rec := boundAttributeRecord{session: s}
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, boundAttributeProperties, &rec)
	})
	return rec.attr, err
}

func (s *Session) readAllowedChildTag(r *wire.Reader) (domain.AllowedChildTag, error) {
	rec := allowedChildTagRecord{session: s}
	err := r.ReadObject(func(r *wire.Reader) error {
		return decodeProperties(r, allowedChildTagProperties, &rec)
	})
	return rec.tag, err
}

// readMetadataInto walks a metadata object's dynamic keys, interning each key and
// non-nil value. A nil metadata value is a no-op.
func (s *Session) readMetadataInto(r *wire.Reader, set func(key string, value *string)) error {
	_, err := r.ReadNilableObject(func(r *wire.Reader) error {
		for {
			key, ok, err := r.NextPropertyName()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			value, present, err := r.TryReadString()
			if err != nil {
				return err
			}
			if present {
				interned := s.intern(value)
				set(s.intern(key), &interned)
				continue
			}
			set(s.intern(key), nil)
		}
	})
	return err
}

// ReadTagHelper decodes one tag helper object. The result is always a descriptor:
// a missing or out-of-order required leading property (Kind, Name, AssemblyName)
// yields domain.UnknownTagHelper with the stream realigned to the object's end, so
// sibling objects keep decoding. Callers must check IsUnknown rather than expect an
// error for that case.
func (s *Session) ReadTagHelper(r *wire.Reader) (*domain.TagHelperDescriptor, error) {
	return s.readTagHelperValue(r)
}

func (s *Session) readTagHelperValue(r *wire.Reader) (*domain.TagHelperDescriptor, error) {
	var result *domain.TagHelperDescriptor
	err := r.ReadObject(func(r *wire.Reader) error {
		d, err := s.readTagHelperObject(r)
		if err != nil {
			return err
		}
		result = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// readTagHelperObject runs the assembly state machine inside an already-open object
// frame: optional checksum probe, strict required triplet, pooled builder over the
// nested schema, cache population.
func (s *Session) readTagHelperObject(r *wire.Reader) (*domain.TagHelperDescriptor, error) {
	name, ok, err := r.NextPropertyName()
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.UnknownTagHelper, nil
	}

	var checksum domain.Checksum
	var hasChecksum bool
	if name == propChecksum {
		v, present, err := r.TryReadUint64()
		if err != nil {
			return nil, err
		}
		if present {
			checksum = domain.Checksum(v)
			hasChecksum = true
		}
		if hasChecksum && s.store != nil {
			if cached, hit := s.store.Get(checksum); hit {
				// The checksum is trusted as-is: the remaining tokens are skipped
				// unread, so a hit costs no reconstruction work.
				if err := r.SkipToEnd(); err != nil {
					return nil, err
				}
				return cached, nil
			}
		}
		name, ok, err = r.NextPropertyName()
		if err != nil {
			return nil, err
		}
		if !ok {
			return domain.UnknownTagHelper, nil
		}
	}

	if name != propKind {
		if err := r.SkipValue(); err != nil {
			return nil, err
		}
		return domain.UnknownTagHelper, nil
	}
	kind, ok, err := r.TryReadString()
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.UnknownTagHelper, nil
	}

	helperName, err := r.ReadRequiredString(propName)
	if err != nil {
		if errors.Is(err, domain.ErrMissingRequiredProperty) {
			return domain.UnknownTagHelper, nil
		}
		return nil, err
	}
	assemblyName, err := r.ReadRequiredString(propAssemblyName)
	if err != nil {
		if errors.Is(err, domain.ErrMissingRequiredProperty) {
			return domain.UnknownTagHelper, nil
		}
		return nil, err
	}

	b := s.builders.Acquire(s.intern(kind), s.intern(helperName), s.intern(assemblyName))
	defer s.builders.Release(b)

	if hasChecksum {
		b.SetChecksum(checksum)
	}

	rec := tagHelperRecord{session: s, builder: b}
	if err := decodeProperties(r, tagHelperProperties, &rec); err != nil {
		return nil, err
	}

	d := b.Build()
	if hasChecksum && s.store != nil {
		s.store.Set(checksum, d)
	}
	return d, nil
}
