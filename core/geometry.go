package core

import (
	"fmt"

	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// Geometry prim categories recognized by the geometry check.
const (
	xformType = "Xform"
	meshType  = "Mesh"
)

// GeometryValidator verifies transform operations, extent bounds and point
// data on every geometry prim in the composed scene.
type GeometryValidator struct{}

var _ Check = &GeometryValidator{} // Compile-time check

// ID returns the geometry check identifier.
func (*GeometryValidator) ID() schema.CheckID { return schema.GeometryCheck }

// Evaluate traverses the scene once, collecting every geometry issue. An
// invalid prim is recorded and traversal continues; geometry is optional, so
// a scene without any geometry prim passes.
func (*GeometryValidator) Evaluate(stage *scene.Stage) schema.Outcome {
	if stage == nil {
		return schema.Outcome{ID: schema.GeometryCheck, Passed: false, Message: "Invalid stage reference."}
	}
	if stage.PseudoRoot() == nil {
		return schema.Outcome{ID: schema.GeometryCheck, Passed: false, Message: "No root prim found in the scene."}
	}

	foundGeometry := false
	var errors []string

	for _, prim := range stage.Traverse() {
		if !prim.IsValid() {
			errors = append(errors, "Encountered an invalid prim in the scene: "+prim.Path())
			continue
		}

		switch prim.TypeName() {
		case xformType:
			foundGeometry = true
			errors = append(errors, checkTransformOps(prim)...)
		case meshType:
			foundGeometry = true
			errors = append(errors, checkMesh(prim)...)
		}
	}

	if !foundGeometry {
		return schema.Outcome{
			ID:      schema.GeometryCheck,
			Passed:  true,
			Message: "No geometry found in the scene, but that's not required.",
		}
	}
	if len(errors) > 0 {
		return schema.Outcome{
			ID:      schema.GeometryCheck,
			Passed:  false,
			Message: bulletList("Geometry validation failed with the following issues:", errors),
		}
	}
	return schema.Outcome{
		ID:      schema.GeometryCheck,
		Passed:  true,
		Message: "All geometry prims are valid with proper transforms and bounds.",
	}
}

// checkTransformOps verifies that every entry in the prim's ordered transform
// operation list has a backing attribute.
func checkTransformOps(prim *scene.Prim) []string {
	order, ok := prim.Attr("xformOpOrder")
	if !ok {
		return nil
	}
	ops, ok := order.StringList()
	if !ok {
		return []string{"Unreadable transform operation order at: " + prim.Path()}
	}

	var errors []string
	for _, op := range ops {
		if _, ok := prim.Attr(op); !ok {
			errors = append(errors, "Invalid transform operation found at: "+prim.Path())
		}
	}
	return errors
}

// checkMesh verifies extent bounds and point data on a mesh prim. The extent
// is required; points are optional but must be readable when present.
func checkMesh(prim *scene.Prim) []string {
	var errors []string

	if extent, ok := prim.Attr("extent"); ok {
		bounds, ok := extent.Vec3Array()
		switch {
		case !ok:
			errors = append(errors, "Invalid extent bounds at: "+prim.Path())
		case len(bounds) == 2 && bounds[0] == bounds[1]:
			errors = append(errors, "Degenerate geometry found at: "+prim.Path())
		}
	} else {
		errors = append(errors, "Extent missing for Mesh at path: "+prim.Path())
	}

	if points, ok := prim.Attr("points"); ok {
		if _, ok := points.Vec3Array(); !ok {
			errors = append(errors, "Invalid point data at: "+prim.Path())
		}
	}
	return errors
}

// bulletList renders a header plus one bulleted line per collected issue.
func bulletList(header string, errors []string) string {
	msg := header + "\n"
	for _, e := range errors {
		msg += fmt.Sprintf("- %s\n", e)
	}
	return msg
}
