package core

import (
	"fmt"

	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// VariantValidator probes every variant of every variant set on every prim,
// verifying that each selection can be applied and that the prim survives
// it. It is the only check that mutates shared stage state, and it restores
// the original selection of each set on every exit path, so that check
// execution order is never observable.
type VariantValidator struct{}

var _ Check = &VariantValidator{} // Compile-time check

// ID returns the variant check identifier.
func (*VariantValidator) ID() schema.CheckID { return schema.VariantsCheck }

// Evaluate traverses every prim, including inactive prims and instance
// proxies, since variant sets may exist on prims invisible to default
// traversal. Variants are optional; a scene without any passes.
func (*VariantValidator) Evaluate(stage *scene.Stage) schema.Outcome {
	if stage == nil {
		return schema.Outcome{ID: schema.VariantsCheck, Passed: false, Message: "Invalid stage reference."}
	}

	foundVariants := false
	var errors []string

	for _, prim := range stage.TraverseAll() {
		if !prim.IsValid() {
			errors = append(errors, "Encountered an invalid prim at: "+prim.Path())
			continue
		}

		sets := prim.VariantSets()
		if len(sets) > 0 {
			foundVariants = true
		}

		for _, set := range sets {
			if set.Name() == "" {
				errors = append(errors, "Found a variant set with an empty name at: "+prim.Path())
				continue
			}
			errors = append(errors, probeVariantSet(stage, prim.Path(), set)...)
		}
	}

	if !foundVariants {
		return schema.Outcome{
			ID:      schema.VariantsCheck,
			Passed:  true,
			Message: "No variants found in the scene. That's acceptable.",
		}
	}
	if len(errors) > 0 {
		return schema.Outcome{
			ID:      schema.VariantsCheck,
			Passed:  false,
			Message: bulletList("Variant validation failed with the following issues:", errors),
		}
	}
	return schema.Outcome{
		ID:      schema.VariantsCheck,
		Passed:  true,
		Message: "All variants and their selections are valid.",
	}
}

// probeVariantSet tries every declared variant of one set and checks that
// the prim remains resolvable after each successful selection. The original
// selection is captured before any mutation and restored no matter how many
// probes failed; omitting the restore would leak mutated state into every
// check that runs afterwards.
func probeVariantSet(stage *scene.Stage, primPath string, set *scene.VariantSet) []string {
	var errors []string

	names := set.Names()
	if len(names) == 0 {
		errors = append(errors, fmt.Sprintf("Variant set '%s' has no variants on prim: %s", set.Name(), primPath))
		return errors
	}

	original := set.Selection()
	defer func() {
		if original != "" {
			set.SetSelection(original)
		}
	}()

	for _, name := range names {
		if name == "" {
			errors = append(errors, fmt.Sprintf("Empty variant name in set '%s' at: %s", set.Name(), primPath))
			continue
		}

		if !set.SetSelection(name) {
			// Selection state is presumed unchanged on failure.
			errors = append(errors, fmt.Sprintf("Failed to set variant '%s' in set '%s' at: %s",
				name, set.Name(), primPath))
			continue
		}

		probed := stage.PrimAtPath(primPath)
		if probed == nil || !probed.IsValid() {
			errors = append(errors, fmt.Sprintf("Prim became invalid after setting variant '%s' in set '%s' at: %s",
				name, set.Name(), primPath))
		}
	}
	return errors
}
