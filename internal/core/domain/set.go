package domain

// SetFormatVersion is the descriptor set envelope version this reader understands.
const SetFormatVersion int32 = 1

// DescriptorSet is the decoded form of one descriptor set document: the project
// configuration, the tag helpers discovered for the project, and any project-level
// diagnostics the producer attached.
type DescriptorSet struct {
	Version       int32
	Configuration *Configuration
	TagHelpers    []*TagHelperDescriptor
	Diagnostics   []Diagnostic
}
