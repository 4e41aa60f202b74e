package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/weft/internal/core/domain"
)

func TestChecksumString(t *testing.T) {
	assert.Equal(t, "0000000000000000", domain.Checksum(0).String())
	assert.Equal(t, "00000000deadbeef", domain.Checksum(0xdeadbeef).String())
}

func TestChecksumBuilder(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		build := func() domain.Checksum {
			b := domain.NewChecksumBuilder()
			b.AppendString("Component")
			b.AppendString("Counter")
			b.AppendInt32(3)
			b.AppendBool(true)
			return b.Sum()
		}
		assert.Equal(t, build(), build())
	})

	t.Run("field separator prevents concatenation collisions", func(t *testing.T) {
		a := domain.NewChecksumBuilder()
		a.AppendString("ab")
		a.AppendString("c")

		b := domain.NewChecksumBuilder()
		b.AppendString("a")
		b.AppendString("bc")

		assert.NotEqual(t, a.Sum(), b.Sum())
	})
}

func TestMetadataCollection(t *testing.T) {
	value := "v"
	other := "w"

	t.Run("get distinguishes absent from nil", func(t *testing.T) {
		m := domain.MetadataCollection{"key": nil}
		_, ok := m.Get("key")
		assert.True(t, ok)
		_, ok = m.Get("absent")
		assert.False(t, ok)
	})

	t.Run("equal", func(t *testing.T) {
		m := domain.MetadataCollection{"a": &value, "b": nil}
		assert.True(t, m.Equal(domain.MetadataCollection{"a": &value, "b": nil}))
		assert.False(t, m.Equal(domain.MetadataCollection{"a": &other, "b": nil}))
		assert.False(t, m.Equal(domain.MetadataCollection{"a": &value, "b": &value}))
		assert.False(t, m.Equal(domain.MetadataCollection{"a": &value}))
	})

	t.Run("clone is independent", func(t *testing.T) {
		m := domain.MetadataCollection{"a": &value}
		c := m.Clone()
		c["b"] = nil
		_, ok := m.Get("b")
		assert.False(t, ok)
	})

	t.Run("nil clones to nil", func(t *testing.T) {
		var m domain.MetadataCollection
		assert.Nil(t, m.Clone())
	})
}

func TestConfigurationEqual(t *testing.T) {
	base := domain.Configuration{
		LanguageVersion:   "8.0",
		ConfigurationName: "MVC-8.0",
		Extensions:        []domain.Extension{{ExtensionName: "A"}, {ExtensionName: "B"}},
	}

	assert.True(t, base.Equal(domain.Configuration{
		LanguageVersion:   "8.0",
		ConfigurationName: "MVC-8.0",
		Extensions:        []domain.Extension{{ExtensionName: "A"}, {ExtensionName: "B"}},
	}))

	reordered := base
	reordered.Extensions = []domain.Extension{{ExtensionName: "B"}, {ExtensionName: "A"}}
	assert.False(t, base.Equal(reordered))

	renamed := base
	renamed.ConfigurationName = "other"
	assert.False(t, base.Equal(renamed))
}

func TestUnknownTagHelper(t *testing.T) {
	assert.True(t, domain.UnknownTagHelper.IsUnknown())
	assert.False(t, (&domain.TagHelperDescriptor{Kind: "Component"}).IsUnknown())
}

func TestHasErrors(t *testing.T) {
	errDiag := domain.NewDiagnostic("RZ1000", "bad", domain.SeverityError, nil)
	warnDiag := domain.NewDiagnostic("RZ2000", "meh", domain.SeverityWarning, nil)

	t.Run("clean descriptor", func(t *testing.T) {
		d := &domain.TagHelperDescriptor{Diagnostics: []domain.Diagnostic{warnDiag}}
		assert.False(t, d.HasErrors())
	})

	t.Run("top level error", func(t *testing.T) {
		d := &domain.TagHelperDescriptor{Diagnostics: []domain.Diagnostic{errDiag}}
		assert.True(t, d.HasErrors())
	})

	t.Run("nested rule error", func(t *testing.T) {
		d := &domain.TagHelperDescriptor{
			TagMatchingRules: []domain.TagMatchingRule{{Diagnostics: []domain.Diagnostic{errDiag}}},
		}
		assert.True(t, d.HasErrors())
	})

	t.Run("nested attribute error", func(t *testing.T) {
		d := &domain.TagHelperDescriptor{
			BoundAttributes: []domain.BoundAttribute{{Diagnostics: []domain.Diagnostic{errDiag}}},
		}
		assert.True(t, d.HasErrors())
	})
}

func TestMessageValue(t *testing.T) {
	assert.Equal(t, "fixed", domain.ConstantMessage("fixed").Message())

	calls := 0
	m := domain.ComputedMessage(func() string {
		calls++
		return "computed"
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, "computed", m.Message())
	assert.Equal(t, "computed", m.Message())
	assert.Equal(t, 2, calls)
}
