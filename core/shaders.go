package core

import (
	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// Shader prim categories recognized by the shader check.
const (
	shaderType   = "Shader"
	materialType = "Material"
)

// ShaderValidator verifies shader identifiers, input wiring, source asset
// paths and the parent material's surface binding for every shader prim.
type ShaderValidator struct{}

var _ Check = &ShaderValidator{} // Compile-time check

// ID returns the shader check identifier.
func (*ShaderValidator) ID() schema.CheckID { return schema.ShadersCheck }

// Evaluate traverses the scene once. Shaders are optional; a scene without
// any shader prim passes.
func (*ShaderValidator) Evaluate(stage *scene.Stage) schema.Outcome {
	if stage == nil {
		return schema.Outcome{ID: schema.ShadersCheck, Passed: false, Message: "Invalid stage reference."}
	}

	foundShader := false
	var errors []string

	for _, prim := range stage.Traverse() {
		if !prim.IsValid() {
			errors = append(errors, "Invalid prim encountered during shader validation: "+prim.Path())
			continue
		}
		if prim.TypeName() != shaderType {
			continue
		}
		foundShader = true
		errors = append(errors, checkShader(stage, prim)...)
	}

	if !foundShader {
		return schema.Outcome{
			ID:      schema.ShadersCheck,
			Passed:  true,
			Message: "No shaders found in the scene, but that's acceptable.",
		}
	}
	if len(errors) > 0 {
		return schema.Outcome{
			ID:      schema.ShadersCheck,
			Passed:  false,
			Message: bulletList("Shader validation failed with the following issues:", errors),
		}
	}
	return schema.Outcome{
		ID:      schema.ShadersCheck,
		Passed:  true,
		Message: "All shaders and their connections are valid.",
	}
}

// checkShader collects the wiring issues of a single shader prim.
func checkShader(stage *scene.Stage, prim *scene.Prim) []string {
	var errors []string

	if id, ok := prim.Attr("info:id"); ok {
		if s, ok := id.String(); !ok || s == "" {
			errors = append(errors, "Missing or invalid shader ID at: "+prim.Path())
		}
	} else {
		errors = append(errors, "Missing or invalid shader ID at: "+prim.Path())
	}

	inputs := prim.Inputs()
	if len(inputs) == 0 {
		errors = append(errors, "Shader has no input parameters at: "+prim.Path())
	} else {
		for _, input := range inputs {
			target, ok := input.Connection()
			if !ok {
				continue
			}
			srcPath, _ := scene.SplitConnection(target)
			if src := stage.PrimAtPath(srcPath); src == nil || !src.IsValid() {
				errors = append(errors, "Invalid shader connection at: "+
					input.BaseName()+" on prim "+prim.Path())
			}
		}
	}

	if asset, ok := prim.Attr("info:sourceAsset"); ok {
		if s, ok := asset.String(); ok && s == "" {
			errors = append(errors, "Missing shader source asset path at: "+prim.Path())
		}
	}

	// Binding integrity of the enclosing material, distinct from the
	// shader's own wiring.
	if parent := prim.Parent(); parent != nil && parent.TypeName() == materialType {
		if surface, ok := parent.Attr("outputs:surface"); ok {
			if target, ok := surface.Connection(); ok {
				srcPath, _ := scene.SplitConnection(target)
				if src := stage.PrimAtPath(srcPath); src == nil || !src.IsValid() {
					errors = append(errors, "Invalid material binding at: "+parent.Path())
				}
			}
		}
	}
	return errors
}
