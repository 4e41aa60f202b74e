package reader

// Wire property names. These must match the producer byte-for-byte, casing included.
const (
	// propChecksum is the reserved leading property carrying the producer-computed
	// content checksum of a tag helper object.
	propChecksum = "__Checksum"

	propKind             = "Kind"
	propName             = "Name"
	propAssemblyName     = "AssemblyName"
	propDisplayName      = "DisplayName"
	propDocumentation    = "Documentation"
	propTagOutputHint    = "TagOutputHint"
	propCaseSensitive    = "CaseSensitive"
	propTagMatchingRules = "TagMatchingRules"
	propBoundAttributes  = "BoundAttributes"
	propAllowedChildTags = "AllowedChildTags"
	propMetadata         = "Metadata"
	propDiagnostics      = "Diagnostics"

	propTagName         = "TagName"
	propParentTag       = "ParentTag"
	propTagStructure    = "TagStructure"
	propAttributes      = "Attributes"
	propNameComparison  = "NameComparison"
	propValue           = "Value"
	propValueComparison = "ValueComparison"

	propTypeName          = "TypeName"
	propIsEnum            = "IsEnum"
	propHasIndexer        = "HasIndexer"
	propIndexerNamePrefix = "IndexerNamePrefix"
	propIndexerTypeName   = "IndexerTypeName"

	propLanguageVersion   = "LanguageVersion"
	propConfigurationName = "ConfigurationName"
	propExtensions        = "Extensions"
	propExtensionName     = "ExtensionName"

	propID       = "Id"
	propMessage  = "Message"
	propSeverity = "Severity"
	propSpan     = "Span"

	propFilePath       = "FilePath"
	propAbsoluteIndex  = "AbsoluteIndex"
	propLineIndex      = "LineIndex"
	propCharacterIndex = "CharacterIndex"
	propLength         = "Length"

	propVersion       = "Version"
	propConfiguration = "Configuration"
	propTagHelpers    = "TagHelpers"
)
