package core

import (
	"testing"

	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantCheckNoVariants(t *testing.T) {
	stage := openScene(t, map[string]string{"root.usda": `
defaultPrim: World
prims:
  - name: World
    type: Xform
`})

	outcome := (&VariantValidator{}).Evaluate(stage)
	assert.Equal(t, schema.VariantsCheck, outcome.ID)
	assert.True(t, outcome.Passed)
	assert.Equal(t, "No variants found in the scene. That's acceptable.", outcome.Message)
}

func TestVariantCheckValidSceneRestoresSelection(t *testing.T) {
	stage := openScene(t, map[string]string{"root.usda": `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: modelVariant
        selection: B
        variants:
          - name: A
            properties:
              size: 1
          - name: B
            properties:
              size: 2
          - name: C
            properties:
              size: 3
`})

	outcome := (&VariantValidator{}).Evaluate(stage)
	assert.True(t, outcome.Passed, outcome.Message)
	assert.Equal(t, "All variants and their selections are valid.", outcome.Message)

	// The probe walked A, B and C but the original selection survives.
	robot := stage.PrimAtPath("/Robot")
	require.NotNil(t, robot)
	sets := robot.VariantSets()
	require.Len(t, sets, 1)
	assert.Equal(t, "B", sets[0].Selection())
}

func TestVariantCheckIsIdempotent(t *testing.T) {
	stage := openScene(t, map[string]string{"root.usda": `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: modelVariant
        selection: A
        variants:
          - name: A
          - name: B
`})

	first := (&VariantValidator{}).Evaluate(stage)
	second := (&VariantValidator{}).Evaluate(stage)
	assert.Equal(t, first, second, "two runs over one stage report identical outcomes")
}

func TestVariantCheckFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "variant set without variants",
			doc: `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: emptySet
`,
			want: "Variant set 'emptySet' has no variants on prim: /Robot",
		},
		{
			name: "empty variant set name",
			doc: `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: ""
        variants:
          - name: A
`,
			want: "Found a variant set with an empty name at: /Robot",
		},
		{
			name: "empty variant name",
			doc: `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: rig
        variants:
          - name: ""
          - name: full
`,
			want: "Empty variant name in set 'rig' at: /Robot",
		},
		{
			name: "variant breaks the prim",
			doc: `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: rig
        selection: bare
        variants:
          - name: full
            references:
              - gone.usda
          - name: bare
`,
			want: "Prim became invalid after setting variant 'full' in set 'rig' at: /Robot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage := openScene(t, map[string]string{"root.usda": tt.doc})
			outcome := (&VariantValidator{}).Evaluate(stage)
			assert.False(t, outcome.Passed)
			assert.Contains(t, outcome.Message, "Variant validation failed with the following issues:")
			assert.Contains(t, outcome.Message, tt.want)
		})
	}
}

func TestVariantCheckRestoresAfterFailure(t *testing.T) {
	stage := openScene(t, map[string]string{"root.usda": `
defaultPrim: Robot
prims:
  - name: Robot
    type: Xform
    variantSets:
      - name: rig
        selection: bare
        variants:
          - name: full
            references:
              - gone.usda
          - name: bare
`})

	outcome := (&VariantValidator{}).Evaluate(stage)
	assert.False(t, outcome.Passed)

	// The failing probe did not leak its selection.
	robot := stage.PrimAtPath("/Robot")
	require.NotNil(t, robot)
	require.Len(t, robot.VariantSets(), 1)
	assert.Equal(t, "bare", robot.VariantSets()[0].Selection())
	assert.True(t, robot.IsValid())
}
