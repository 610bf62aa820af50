package scene

import "slices"

// VariantSet is a named choice-point on a prim. Reading is always allowed;
// selecting recomposes the stage, so it must be paired with a restore of the
// original selection by any caller probing selections.
type VariantSet struct {
	stage    *Stage
	primPath string
	name     string
	names    []string
	authored string
	proxy    bool
}

// Name returns the variant set's name.
func (vs *VariantSet) Name() string { return vs.name }

// Names returns the declared variant names in authored order.
func (vs *VariantSet) Names() []string { return vs.names }

// Selection returns the currently effective variant selection, or "" when
// nothing is selected. Stage-level selections win over authored ones.
func (vs *VariantSet) Selection() string {
	if sel, ok := vs.stage.selection(vs.primPath, vs.name); ok {
		return sel
	}
	return vs.authored
}

// SetSelection switches the set to the named variant and recomposes the
// stage. It reports false without changing any state when the prim is an
// instance proxy or the name is not a declared variant.
func (vs *VariantSet) SetSelection(name string) bool {
	if vs.proxy {
		return false
	}
	if !slices.Contains(vs.names, name) {
		return false
	}
	vs.stage.setSelection(vs.primPath, vs.name, name)
	return true
}
