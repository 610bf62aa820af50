package core

import (
	"fmt"

	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// LayerValidator verifies the structure of the stage's layer stack: root
// layer preconditions, duplicate identifiers, sub-layer resolution one hop
// deep, and the reference/payload lists of each layer's root spec.
type LayerValidator struct{}

var _ Check = &LayerValidator{} // Compile-time check

// ID returns the layer check identifier.
func (*LayerValidator) ID() schema.CheckID { return schema.LayersCheck }

// Evaluate walks the layer stack outermost-first. An empty stack and an
// unreadable root layer are hard preconditions that fail immediately; all
// other findings accumulate across the whole stack before a verdict.
func (*LayerValidator) Evaluate(stage *scene.Stage) schema.Outcome {
	if stage == nil {
		return schema.Outcome{ID: schema.LayersCheck, Passed: false, Message: "Invalid stage reference."}
	}

	stack := stage.LayerStack()
	if len(stack) == 0 {
		return schema.Outcome{ID: schema.LayersCheck, Passed: false, Message: "Layer stack is empty."}
	}
	root := stack[0]
	if root == nil {
		return schema.Outcome{ID: schema.LayersCheck, Passed: false, Message: "The first layer in the stack is null."}
	}

	var errors []string
	seenIDs := make(map[string]bool)

	// Named persistent layers must declare an entry point.
	if !root.Anonymous() && !root.HasDefaultPrim() {
		errors = append(errors, "Root layer missing default prim specification: "+root.Identifier())
	}

	for i, layer := range stack {
		if layer == nil {
			errors = append(errors, fmt.Sprintf("Broken reference at layer index %d", i))
			continue
		}

		id := layer.Identifier()
		if seenIDs[id] {
			errors = append(errors, "Duplicate layer identifier found: "+id)
		} else {
			seenIDs[id] = true
		}

		errors = append(errors, checkSubLayers(layer)...)
		errors = append(errors, checkRootSpec(layer, i)...)
	}

	if len(errors) > 0 {
		return schema.Outcome{
			ID:      schema.LayersCheck,
			Passed:  false,
			Message: bulletList("Layer structure validation failed with the following issues:", errors),
		}
	}
	return schema.Outcome{
		ID:      schema.LayersCheck,
		Passed:  true,
		Message: "Layer stack and all references are valid.",
	}
}

// checkSubLayers resolves each declared sub-layer and, one hop deep, every
// external reference that sub-layer itself declares. The transitive check
// stops at the sub-layer's own reference list.
func checkSubLayers(layer *scene.Layer) []string {
	var errors []string
	for _, subPath := range layer.SubLayerPaths() {
		sub, err := layer.Resolve(subPath)
		if err != nil {
			errors = append(errors, "Unresolved sublayer: "+subPath)
			continue
		}
		for _, ref := range sub.ExternalReferences() {
			if _, err := sub.Resolve(ref); err != nil {
				errors = append(errors, "Broken external reference in sublayer: "+ref)
			}
		}
	}
	return errors
}

// checkRootSpec resolves the reference and payload lists of the layer's root
// prim spec. A layer without one may legitimately be a library or session
// layer, but it is still reported.
func checkRootSpec(layer *scene.Layer, index int) []string {
	spec := layer.RootSpec()
	if spec == nil {
		return []string{fmt.Sprintf("Layer at index %d has no root prim (possibly a library or session layer).", index)}
	}

	var errors []string
	for _, ref := range spec.References {
		if ref == "" {
			continue
		}
		if _, err := layer.Resolve(ref); err != nil {
			errors = append(errors, "Broken reference in layer: "+ref)
		}
	}
	for _, payload := range spec.Payloads {
		if payload == "" {
			continue
		}
		if _, err := layer.Resolve(payload); err != nil {
			errors = append(errors, "Broken payload in layer: "+payload)
		}
	}
	return errors
}
