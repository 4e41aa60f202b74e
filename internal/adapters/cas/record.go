package cas

import "go.trai.ch/weft/internal/core/domain"

// descriptorRecord is the serialized form of a descriptor. Diagnostics are
// flattened because the domain type defers message production behind a closure
// that cannot round trip; persisted messages are always constants.
type descriptorRecord struct {
	Kind             string
	Name             string
	AssemblyName     string
	DisplayName      string
	Documentation    string
	TagOutputHint    string
	CaseSensitive    bool
	TagMatchingRules []tagMatchingRuleRecord
	BoundAttributes  []boundAttributeRecord
	AllowedChildTags []domain.AllowedChildTag
	Metadata         map[string]*string
	Diagnostics      []diagnosticRecord
	Checksum         uint64
}

type tagMatchingRuleRecord struct {
	TagName       string
	ParentTag     string
	TagStructure  int32
	CaseSensitive bool
	Attributes    []domain.RequiredAttribute
	Diagnostics   []diagnosticRecord
}

type boundAttributeRecord struct {
	Name              string
	TypeName          string
	IsEnum            bool
	HasIndexer        bool
	IndexerNamePrefix string
	IndexerTypeName   string
	DisplayName       string
	Documentation     string
	CaseSensitive     bool
	Metadata          map[string]*string
	Diagnostics       []diagnosticRecord
}

type diagnosticRecord struct {
	ID       string
	Message  string
	Severity int32
	Span     *domain.SourceSpan
}

func newDiagnosticRecords(diags []domain.Diagnostic) []diagnosticRecord {
	if len(diags) == 0 {
		return nil
	}
	out := make([]diagnosticRecord, len(diags))
	for i, d := range diags {
		out[i] = diagnosticRecord{
			ID:       d.Descriptor.ID,
			Message:  d.Descriptor.Message.Message(),
			Severity: int32(d.Descriptor.Severity),
			Span:     d.Span,
		}
	}
	return out
}

func (r diagnosticRecord) diagnostic() domain.Diagnostic {
	return domain.NewDiagnostic(r.ID, r.Message, domain.Severity(r.Severity), r.Span)
}

func diagnostics(recs []diagnosticRecord) []domain.Diagnostic {
	if len(recs) == 0 {
		return nil
	}
	out := make([]domain.Diagnostic, len(recs))
	for i, r := range recs {
		out[i] = r.diagnostic()
	}
	return out
}

func newDescriptorRecord(d *domain.TagHelperDescriptor) descriptorRecord {
	rec := descriptorRecord{
		Kind:             d.Kind,
		Name:             d.Name,
		AssemblyName:     d.AssemblyName,
		DisplayName:      d.DisplayName,
		Documentation:    d.Documentation,
		TagOutputHint:    d.TagOutputHint,
		CaseSensitive:    d.CaseSensitive,
		AllowedChildTags: d.AllowedChildTags,
		Metadata:         d.Metadata,
		Diagnostics:      newDiagnosticRecords(d.Diagnostics),
		Checksum:         uint64(d.Checksum),
	}
	for _, rule := range d.TagMatchingRules {
		rec.TagMatchingRules = append(rec.TagMatchingRules, tagMatchingRuleRecord{
			TagName:       rule.TagName,
			ParentTag:     rule.ParentTag,
			TagStructure:  int32(rule.TagStructure),
			CaseSensitive: rule.CaseSensitive,
			Attributes:    rule.Attributes,
			Diagnostics:   newDiagnosticRecords(rule.Diagnostics),
		})
	}
	for _, attr := range d.BoundAttributes {
		rec.BoundAttributes = append(rec.BoundAttributes, boundAttributeRecord{
			Name:              attr.Name,
			TypeName:          attr.TypeName,
			IsEnum:            attr.IsEnum,
			HasIndexer:        attr.HasIndexer,
			IndexerNamePrefix: attr.IndexerNamePrefix,
			IndexerTypeName:   attr.IndexerTypeName,
			DisplayName:       attr.DisplayName,
			Documentation:     attr.Documentation,
			CaseSensitive:     attr.CaseSensitive,
			Metadata:          attr.Metadata,
			Diagnostics:       newDiagnosticRecords(attr.Diagnostics),
		})
	}
	return rec
}

func (r descriptorRecord) descriptor() *domain.TagHelperDescriptor {
	d := &domain.TagHelperDescriptor{
		Kind:             r.Kind,
		Name:             r.Name,
		AssemblyName:     r.AssemblyName,
		DisplayName:      r.DisplayName,
		Documentation:    r.Documentation,
		TagOutputHint:    r.TagOutputHint,
		CaseSensitive:    r.CaseSensitive,
		AllowedChildTags: r.AllowedChildTags,
		Metadata:         r.Metadata,
		Diagnostics:      diagnostics(r.Diagnostics),
		Checksum:         domain.Checksum(r.Checksum),
	}
	for _, rule := range r.TagMatchingRules {
		d.TagMatchingRules = append(d.TagMatchingRules, domain.TagMatchingRule{
			TagName:       rule.TagName,
			ParentTag:     rule.ParentTag,
			TagStructure:  domain.TagStructure(rule.TagStructure),
			CaseSensitive: rule.CaseSensitive,
			Attributes:    rule.Attributes,
			Diagnostics:   diagnostics(rule.Diagnostics),
		})
	}
	for _, attr := range r.BoundAttributes {
		d.BoundAttributes = append(d.BoundAttributes, domain.BoundAttribute{
			Name:              attr.Name,
			TypeName:          attr.TypeName,
			IsEnum:            attr.IsEnum,
			HasIndexer:        attr.HasIndexer,
			IndexerNamePrefix: attr.IndexerNamePrefix,
			IndexerTypeName:   attr.IndexerTypeName,
			DisplayName:       attr.DisplayName,
			Documentation:     attr.Documentation,
			CaseSensitive:     attr.CaseSensitive,
			Metadata:          attr.Metadata,
			Diagnostics:       diagnostics(attr.Diagnostics),
		})
	}
	return d
}
