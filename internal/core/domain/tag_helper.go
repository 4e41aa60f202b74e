package domain

// TagStructure mirrors the producer's tag structure enumeration.
type TagStructure int32

const (
	// TagStructureUnspecified leaves the structure to the consuming editor.
	TagStructureUnspecified TagStructure = iota
	// TagStructureNormalOrSelfClosing allows both forms.
	TagStructureNormalOrSelfClosing
	// TagStructureWithoutEndTag requires a void element.
	TagStructureWithoutEndTag
)

// RequiredAttributeNameComparison selects how a required attribute name matches.
type RequiredAttributeNameComparison int32

const (
	// NameComparisonFullMatch requires the attribute name to match exactly.
	NameComparisonFullMatch RequiredAttributeNameComparison = iota
	// NameComparisonPrefixMatch requires the attribute name to start with the value.
	NameComparisonPrefixMatch
)

// RequiredAttributeValueComparison selects how a required attribute value matches.
type RequiredAttributeValueComparison int32

const (
	// ValueComparisonNone ignores the attribute value.
	ValueComparisonNone RequiredAttributeValueComparison = iota
	// ValueComparisonFullMatch requires the value to match exactly.
	ValueComparisonFullMatch
	// ValueComparisonPrefixMatch requires the value to start with the expected string.
	ValueComparisonPrefixMatch
	// ValueComparisonSuffixMatch requires the value to end with the expected string.
	ValueComparisonSuffixMatch
)

// RequiredAttribute constrains when a tag matching rule applies.
type RequiredAttribute struct {
	Name            string
	NameComparison  RequiredAttributeNameComparison
	Value           string
	ValueComparison RequiredAttributeValueComparison
}

// TagMatchingRule describes one tag shape a tag helper targets.
type TagMatchingRule struct {
	TagName       string
	ParentTag     string
	TagStructure  TagStructure
	CaseSensitive bool
	Attributes    []RequiredAttribute
	Diagnostics   []Diagnostic
}

// BoundAttribute describes an attribute the tag helper binds to a property.
type BoundAttribute struct {
	Name              string
	TypeName          string
	IsEnum            bool
	HasIndexer        bool
	IndexerNamePrefix string
	IndexerTypeName   string
	DisplayName       string
	Documentation     string
	CaseSensitive     bool
	Metadata          MetadataCollection
	Diagnostics       []Diagnostic
}

// AllowedChildTag names a tag permitted as a child of the helper's element.
type AllowedChildTag struct {
	Name        string
	DisplayName string
}

// TagHelperDescriptor is the immutable top-level descriptor. Instances are built
// once by the reader (or its builder pool) and never mutated afterwards.
type TagHelperDescriptor struct {
	Kind             string
	Name             string
	AssemblyName     string
	DisplayName      string
	Documentation    string
	TagOutputHint    string
	CaseSensitive    bool
	TagMatchingRules []TagMatchingRule
	BoundAttributes  []BoundAttribute
	AllowedChildTags []AllowedChildTag
	Metadata         MetadataCollection
	Diagnostics      []Diagnostic
	Checksum         Checksum
}

// unknownKind is reserved for the abort sentinel; no producer emits it.
const unknownKind = "__UnknownTagHelper"

// UnknownTagHelper is the sentinel yielded when a descriptor's required leading
// properties (Kind, Name, AssemblyName) are missing or out of order. Callers must
// check IsUnknown rather than expect an error for that case.
var UnknownTagHelper = &TagHelperDescriptor{Kind: unknownKind}

// IsUnknown reports whether the descriptor is the abort sentinel.
func (d *TagHelperDescriptor) IsUnknown() bool {
	return d == UnknownTagHelper || d.Kind == unknownKind
}

// HasErrors reports whether any diagnostic on the descriptor or its nested
// collections is an error.
func (d *TagHelperDescriptor) HasErrors() bool {
	for _, diag := range d.Diagnostics {
		if diag.Descriptor.Severity == SeverityError {
			return true
		}
	}
	for _, rule := range d.TagMatchingRules {
		for _, diag := range rule.Diagnostics {
			if diag.Descriptor.Severity == SeverityError {
				return true
			}
		}
	}
	for _, attr := range d.BoundAttributes {
		for _, diag := range attr.Diagnostics {
			if diag.Descriptor.Severity == SeverityError {
				return true
			}
		}
	}
	return false
}
