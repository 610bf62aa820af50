package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openScene writes the given layer documents into one temp directory and
// opens the stage rooted at root.usda.
func openScene(t *testing.T, layers map[string]string) *scene.Stage {
	t.Helper()
	dir := t.TempDir()
	for name, content := range layers {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	stage, err := scene.Open(filepath.Join(dir, "root.usda"))
	require.NoError(t, err)
	return stage
}

func TestNewRegistryCanonicalOrder(t *testing.T) {
	reg := NewRegistry()
	require.Equal(t, 4, reg.Len())

	selected := reg.Selected(schema.DefaultRunConfig())
	require.Len(t, selected, 4)
	assert.Equal(t, schema.GeometryCheck, selected[0].ID())
	assert.Equal(t, schema.ShadersCheck, selected[1].ID())
	assert.Equal(t, schema.LayersCheck, selected[2].ID())
	assert.Equal(t, schema.VariantsCheck, selected[3].ID())
}

func TestRegistrySelectedFilters(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name string
		run  schema.RunConfig
		want []schema.CheckID
	}{
		{
			name: "only geometry",
			run:  schema.OnlyRunConfig(schema.GeometryCheck),
			want: []schema.CheckID{schema.GeometryCheck},
		},
		{
			name: "skip shaders keeps order",
			run:  schema.RunConfig{Geometry: true, Layers: true, Variants: true},
			want: []schema.CheckID{schema.GeometryCheck, schema.LayersCheck, schema.VariantsCheck},
		},
		{
			name: "nothing enabled",
			run:  schema.RunConfig{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []schema.CheckID
			for _, c := range reg.Selected(tt.run) {
				got = append(got, c.ID())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryAllowsDuplicates(t *testing.T) {
	reg := &Registry{}
	reg.Register(&GeometryValidator{})
	reg.Register(&GeometryValidator{})

	selected := reg.Selected(schema.DefaultRunConfig())
	require.Len(t, selected, 2, "duplicate registrations both run")
}
