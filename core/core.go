// Package core holds the check registry and the four structural validation
// checks usdcheck runs against a composed scene.
package core

import (
	"github.com/lwoluke/usd-automated-testing/scene"
	"github.com/lwoluke/usd-automated-testing/schema"
)

// Check is one structural validation over an opened stage. Implementations
// always return an Outcome; structural findings are collected into the
// outcome message, never raised as errors.
type Check interface {
	// ID returns the check's fixed identifier.
	ID() schema.CheckID

	// Evaluate runs the check against the shared stage. Implementations may
	// read freely; only the variants check may mutate, and it must restore
	// every mutation before returning.
	Evaluate(stage *scene.Stage) schema.Outcome
}

// Registry holds checks in registration order.
type Registry struct {
	checks []Check
}

// NewRegistry returns a registry preloaded with the four standard checks in
// canonical order.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(&GeometryValidator{})
	r.Register(&ShaderValidator{})
	r.Register(&LayerValidator{})
	r.Register(&VariantValidator{})
	return r
}

// Register appends a check. Duplicate IDs are allowed; both entries run.
func (r *Registry) Register(c Check) {
	r.checks = append(r.checks, c)
}

// Selected filters the registered checks by the run configuration. The
// relative order of the surviving entries equals registration order; nothing
// is invented or reordered.
func (r *Registry) Selected(rc schema.RunConfig) []Check {
	var out []Check
	for _, c := range r.checks {
		if rc.Enabled(c.ID()) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.checks)
}
