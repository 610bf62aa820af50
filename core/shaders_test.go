package core

import (
	"testing"

	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/stretchr/testify/assert"
)

func TestShaderCheckNoShaders(t *testing.T) {
	stage := openScene(t, map[string]string{"root.usda": `
defaultPrim: World
prims:
  - name: World
    type: Xform
`})

	outcome := (&ShaderValidator{}).Evaluate(stage)
	assert.Equal(t, schema.ShadersCheck, outcome.ID)
	assert.True(t, outcome.Passed)
	assert.Equal(t, "No shaders found in the scene, but that's acceptable.", outcome.Message)
}

func TestShaderCheckValidScene(t *testing.T) {
	stage := openScene(t, map[string]string{"root.usda": `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Mat
        type: Material
        properties:
          outputs:surface:
            connect: /Looks/Mat/Surf.outputs:surface
        children:
          - name: Surf
            type: Shader
            properties:
              info:id: UsdPreviewSurface
              inputs:diffuseColor:
                connect: /Looks/Mat/Tex.outputs:rgb
              inputs:roughness: 0.4
          - name: Tex
            type: Shader
            properties:
              info:id: UsdUVTexture
              inputs:file: textures/wood.png
`})

	outcome := (&ShaderValidator{}).Evaluate(stage)
	assert.True(t, outcome.Passed, outcome.Message)
	assert.Equal(t, "All shaders and their connections are valid.", outcome.Message)
}

func TestShaderCheckFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing shader id",
			doc: `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Surf
        type: Shader
        properties:
          inputs:roughness: 0.4
`,
			want: "Missing or invalid shader ID at: /Looks/Surf",
		},
		{
			name: "empty shader id",
			doc: `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Surf
        type: Shader
        properties:
          info:id: ""
          inputs:roughness: 0.4
`,
			want: "Missing or invalid shader ID at: /Looks/Surf",
		},
		{
			name: "no input parameters",
			doc: `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Surf
        type: Shader
        properties:
          info:id: UsdPreviewSurface
`,
			want: "Shader has no input parameters at: /Looks/Surf",
		},
		{
			name: "dangling connection",
			doc: `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Surf
        type: Shader
        properties:
          info:id: UsdPreviewSurface
          inputs:diffuseColor:
            connect: /Looks/Gone.outputs:rgb
`,
			want: "Invalid shader connection at: diffuseColor on prim /Looks/Surf",
		},
		{
			name: "empty source asset",
			doc: `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Surf
        type: Shader
        properties:
          info:id: UsdPreviewSurface
          info:sourceAsset: ""
          inputs:roughness: 0.4
`,
			want: "Missing shader source asset path at: /Looks/Surf",
		},
		{
			name: "broken material binding",
			doc: `
defaultPrim: Looks
prims:
  - name: Looks
    type: Scope
    children:
      - name: Mat
        type: Material
        properties:
          outputs:surface:
            connect: /Looks/Mat/Gone.outputs:surface
        children:
          - name: Surf
            type: Shader
            properties:
              info:id: UsdPreviewSurface
              inputs:roughness: 0.4
`,
			want: "Invalid material binding at: /Looks/Mat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := openScene(t, map[string]string{"root.usda": tt.doc})
			outcome := (&ShaderValidator{}).Evaluate(stage)
			assert.False(t, outcome.Passed)
			assert.Contains(t, outcome.Message, "Shader validation failed with the following issues:")
			assert.Contains(t, outcome.Message, "- "+tt.want)
		})
	}
}
