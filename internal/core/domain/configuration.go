package domain

// Extension identifies a language extension enabled by a project configuration.
// Extensions are immutable and compare by name.
type Extension struct {
	ExtensionName string
}

// Configuration describes the language configuration a project was analyzed under.
// The Extensions order is significant and preserved from the wire form.
type Configuration struct {
	LanguageVersion   string
	ConfigurationName string
	Extensions        []Extension
}

// Equal reports whether two configurations carry identical content, including
// extension order.
func (c Configuration) Equal(other Configuration) bool {
	if c.LanguageVersion != other.LanguageVersion || c.ConfigurationName != other.ConfigurationName {
		return false
	}
	if len(c.Extensions) != len(other.Extensions) {
		return false
	}
	for i, ext := range c.Extensions {
		if ext != other.Extensions[i] {
			return false
		}
	}
	return true
}
