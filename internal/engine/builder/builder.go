// Package builder provides pooled construction of immutable tag helper descriptors.
package builder

import "go.trai.ch/weft/internal/core/domain"

// TagHelper accumulates the mutable state of one descriptor under construction.
// Instances are owned exclusively by the decode call that acquired them and must be
// returned to their Pool on every exit path, including aborts.
type TagHelper struct {
	kind         string
	name         string
	assemblyName string

	displayName   string
	documentation string
	tagOutputHint string
	caseSensitive bool

	rules       []domain.TagMatchingRule
	attributes  []domain.BoundAttribute
	childTags   []domain.AllowedChildTag
	metadata    domain.MetadataCollection
	diagnostics []domain.Diagnostic
	checksum    domain.Checksum
}

// SetDisplayName sets the display name.
func (b *TagHelper) SetDisplayName(s string) { b.displayName = s }

// SetDocumentation sets the documentation string.
func (b *TagHelper) SetDocumentation(s string) { b.documentation = s }

// SetTagOutputHint sets the tag output hint.
func (b *TagHelper) SetTagOutputHint(s string) { b.tagOutputHint = s }

// SetCaseSensitive sets case sensitivity.
func (b *TagHelper) SetCaseSensitive(v bool) { b.caseSensitive = v }

// SetChecksum records the producer content checksum.
func (b *TagHelper) SetChecksum(c domain.Checksum) { b.checksum = c }

// AddRule appends a tag matching rule.
func (b *TagHelper) AddRule(r domain.TagMatchingRule) { b.rules = append(b.rules, r) }

// AddAttribute appends a bound attribute.
func (b *TagHelper) AddAttribute(a domain.BoundAttribute) { b.attributes = append(b.attributes, a) }

// AddChildTag appends an allowed child tag.
func (b *TagHelper) AddChildTag(t domain.AllowedChildTag) { b.childTags = append(b.childTags, t) }

// SetMetadata records one metadata entry; value may be nil.
func (b *TagHelper) SetMetadata(key string, value *string) {
	if b.metadata == nil {
		b.metadata = make(domain.MetadataCollection)
	}
	b.metadata[key] = value
}

// AddDiagnostic appends a diagnostic.
func (b *TagHelper) AddDiagnostic(d domain.Diagnostic) { b.diagnostics = append(b.diagnostics, d) }

// Build finalizes the accumulated state into an immutable descriptor. The builder
// keeps no references into the result, so releasing it afterwards is always safe.
func (b *TagHelper) Build() *domain.TagHelperDescriptor {
	d := &domain.TagHelperDescriptor{
		Kind:          b.kind,
		Name:          b.name,
		AssemblyName:  b.assemblyName,
		DisplayName:   b.displayName,
		Documentation: b.documentation,
		TagOutputHint: b.tagOutputHint,
		CaseSensitive: b.caseSensitive,
		Metadata:      b.metadata.Clone(),
		Checksum:      b.checksum,
	}
	if len(b.rules) > 0 {
		d.TagMatchingRules = append([]domain.TagMatchingRule(nil), b.rules...)
	}
	if len(b.attributes) > 0 {
		d.BoundAttributes = append([]domain.BoundAttribute(nil), b.attributes...)
	}
	if len(b.childTags) > 0 {
		d.AllowedChildTags = append([]domain.AllowedChildTag(nil), b.childTags...)
	}
	if len(b.diagnostics) > 0 {
		d.Diagnostics = append([]domain.Diagnostic(nil), b.diagnostics...)
	}
	return d
}

// reset clears all accumulated state so the builder can be pooled. Slices are
// truncated in place to keep their capacity for the next borrow.
func (b *TagHelper) reset() {
	b.kind = ""
	b.name = ""
	b.assemblyName = ""
	b.displayName = ""
	b.documentation = ""
	b.tagOutputHint = ""
	b.caseSensitive = false
	b.rules = b.rules[:0]
	b.attributes = b.attributes[:0]
	b.childTags = b.childTags[:0]
	b.metadata = nil
	b.diagnostics = b.diagnostics[:0]
	b.checksum = 0
}
