package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/builder"
)

func TestBuild(t *testing.T) {
	pool := builder.NewPool()
	b := pool.Acquire("Component", "Counter", "MyApp")
	defer pool.Release(b)

	b.SetDisplayName("MyApp.Counter")
	b.SetDocumentation("Increments a counter.")
	b.SetCaseSensitive(true)
	b.SetChecksum(domain.Checksum(7))
	b.AddRule(domain.TagMatchingRule{TagName: "counter"})
	b.AddAttribute(domain.BoundAttribute{Name: "IncrementAmount", TypeName: "System.Int32"})
	b.AddChildTag(domain.AllowedChildTag{Name: "li"})
	value := "IncrementAmount"
	b.SetMetadata("Common.PropertyName", &value)
	b.SetMetadata("Common.Tombstone", nil)
	b.AddDiagnostic(domain.NewDiagnostic("RZ1000", "bad", domain.SeverityError, nil))

	d := b.Build()

	assert.Equal(t, "Component", d.Kind)
	assert.Equal(t, "Counter", d.Name)
	assert.Equal(t, "MyApp", d.AssemblyName)
	assert.Equal(t, "MyApp.Counter", d.DisplayName)
	assert.Equal(t, "Increments a counter.", d.Documentation)
	assert.True(t, d.CaseSensitive)
	assert.Equal(t, domain.Checksum(7), d.Checksum)
	require.Len(t, d.TagMatchingRules, 1)
	require.Len(t, d.BoundAttributes, 1)
	require.Len(t, d.AllowedChildTags, 1)
	require.Len(t, d.Diagnostics, 1)

	got, ok := d.Metadata.Get("Common.PropertyName")
	require.True(t, ok)
	assert.Equal(t, "IncrementAmount", got)
	tombstone, ok := d.Metadata["Common.Tombstone"]
	require.True(t, ok)
	assert.Nil(t, tombstone)
}

func TestBuildIsolatesResults(t *testing.T) {
	pool := builder.NewPool()
	b := pool.Acquire("Component", "First", "MyApp")

	b.AddRule(domain.TagMatchingRule{TagName: "first"})
	first := b.Build()

	pool.Release(b)

	// Reacquire and build something else; the first result must not change.
	b = pool.Acquire("Component", "Second", "MyApp")
	b.AddRule(domain.TagMatchingRule{TagName: "second"})
	second := b.Build()
	pool.Release(b)

	assert.Equal(t, "First", first.Name)
	require.Len(t, first.TagMatchingRules, 1)
	assert.Equal(t, "first", first.TagMatchingRules[0].TagName)
	assert.Equal(t, "Second", second.Name)
	assert.Equal(t, "second", second.TagMatchingRules[0].TagName)
}

func TestReleaseResetsState(t *testing.T) {
	pool := builder.NewPool()

	b := pool.Acquire("Component", "Dirty", "MyApp")
	b.SetDisplayName("leftover")
	b.AddRule(domain.TagMatchingRule{TagName: "stale"})
	pool.Release(b)

	// Whatever instance comes back, it must carry no earlier state.
	b = pool.Acquire("Component", "Clean", "MyApp")
	defer pool.Release(b)
	d := b.Build()

	assert.Equal(t, "Clean", d.Name)
	assert.Empty(t, d.DisplayName)
	assert.Empty(t, d.TagMatchingRules)
	assert.Nil(t, d.Metadata)
}

func TestReleaseNilIsSafe(t *testing.T) {
	pool := builder.NewPool()
	assert.NotPanics(t, func() {
		pool.Release(nil)
	})
}
