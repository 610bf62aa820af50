package core

import (
	"testing"

	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/stretchr/testify/assert"
)

func TestLayerCheckValidStack(t *testing.T) {
	stage := openScene(t, map[string]string{
		"root.usda": `
defaultPrim: World
subLayers:
  - detail.usda
prims:
  - name: World
    type: Xform
`,
		"detail.usda": `
defaultPrim: World
prims:
  - name: World
    type: Xform
`,
	})

	outcome := (&LayerValidator{}).Evaluate(stage)
	assert.Equal(t, schema.LayersCheck, outcome.ID)
	assert.True(t, outcome.Passed, outcome.Message)
	assert.Equal(t, "Layer stack and all references are valid.", outcome.Message)
}

func TestLayerCheckFailures(t *testing.T) {
	tests := []struct {
		name   string
		layers map[string]string
		want   string
	}{
		{
			name: "missing default prim on root",
			layers: map[string]string{"root.usda": `
prims:
  - name: World
    type: Xform
`},
			want: "Root layer missing default prim specification:",
		},
		{
			name: "anonymous root needs no default prim",
			layers: map[string]string{"root.usda": `
anonymous: true
prims:
  - name: World
    type: Xform
`},
			want: "",
		},
		{
			name: "unresolved sublayer",
			layers: map[string]string{"root.usda": `
defaultPrim: World
subLayers:
  - missing.usda
prims:
  - name: World
    type: Xform
`},
			want: "Unresolved sublayer: missing.usda",
		},
		{
			name: "broken nested sublayer slot",
			layers: map[string]string{"root.usda": `
defaultPrim: World
subLayers:
  - missing.usda
prims:
  - name: World
    type: Xform
`},
			want: "Broken reference at layer index 1",
		},
		{
			name: "duplicate layer identifier",
			layers: map[string]string{
				"root.usda": `
identifier: shared-id
defaultPrim: World
subLayers:
  - copy.usda
prims:
  - name: World
    type: Xform
`,
				"copy.usda": `
identifier: shared-id
prims:
  - name: World
    type: Xform
`,
			},
			want: "Duplicate layer identifier found: shared-id",
		},
		{
			name: "broken external reference in sublayer",
			layers: map[string]string{
				"root.usda": `
defaultPrim: World
subLayers:
  - detail.usda
prims:
  - name: World
    type: Xform
`,
				"detail.usda": `
prims:
  - name: World
    type: Xform
    references:
      - gone.usda
`,
			},
			want: "Broken external reference in sublayer: gone.usda",
		},
		{
			name: "broken root reference",
			layers: map[string]string{"root.usda": `
defaultPrim: World
references:
  - gone.usda
prims:
  - name: World
    type: Xform
`},
			want: "Broken reference in layer: gone.usda",
		},
		{
			name: "broken root payload",
			layers: map[string]string{"root.usda": `
defaultPrim: World
payloads:
  - gone.usda
prims:
  - name: World
    type: Xform
`},
			want: "Broken payload in layer: gone.usda",
		},
		{
			name: "empty sublayer reported as library layer",
			layers: map[string]string{
				"root.usda": `
defaultPrim: World
subLayers:
  - empty.usda
prims:
  - name: World
    type: Xform
`,
				"empty.usda": `
identifier: empty-layer
`,
			},
			want: "Layer at index 1 has no root prim (possibly a library or session layer).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := openScene(t, tt.layers)
			outcome := (&LayerValidator{}).Evaluate(stage)
			if tt.want == "" {
				assert.True(t, outcome.Passed, outcome.Message)
				return
			}
			assert.False(t, outcome.Passed)
			assert.Contains(t, outcome.Message, "Layer structure validation failed with the following issues:")
			assert.Contains(t, outcome.Message, tt.want)
		})
	}
}
