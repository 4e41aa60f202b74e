package domain

// MetadataCollection maps metadata keys to nullable string values. Keys are unique
// and order is irrelevant; a nil value is distinct from an absent key.
type MetadataCollection map[string]*string

// Get returns the value for key along with whether the key exists. The returned
// string is empty when the stored value is nil.
func (m MetadataCollection) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", ok
	}
	return *v, true
}

// Equal reports whether both collections hold the same keys with the same values,
// treating nil values as equal to each other.
func (m MetadataCollection) Equal(other MetadataCollection) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok {
			return false
		}
		if (v == nil) != (ov == nil) {
			return false
		}
		if v != nil && *v != *ov {
			return false
		}
	}
	return true
}

// Clone returns an independent copy so builders can hand out immutable views.
func (m MetadataCollection) Clone() MetadataCollection {
	if m == nil {
		return nil
	}
	out := make(MetadataCollection, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
