package scene

import "slices"

// boundSpec ties a prim spec to the layer that authored it, so relative
// asset paths resolve against the right anchor.
type boundSpec struct {
	spec  *primSpec
	layer *Layer
}

type specGroup struct {
	name  string
	specs []boundSpec
}

// maxComposeDepth bounds reference-chain expansion. A chain this deep means
// a cyclic or runaway arc; the affected prim composes as invalid.
const maxComposeDepth = 32

// compose rebuilds the composed prim tree from the layer stack and the
// stage's current variant selections.
func (s *Stage) compose() {
	s.pseudoRoot = &Prim{stage: s, path: "/", valid: true, active: true}

	var roots []boundSpec
	for _, l := range s.stack {
		if l == nil {
			continue
		}
		for _, sp := range l.rootSpecs() {
			roots = append(roots, boundSpec{sp, l})
		}
	}
	for _, g := range groupByName(roots) {
		s.pseudoRoot.children = append(s.pseudoRoot.children,
			s.composePrim(s.pseudoRoot, g.name, g.specs, false, 0))
	}
}

// groupByName buckets specs by prim name, preserving the order in which each
// name first appears. Spec order within a bucket is strength order.
func groupByName(bound []boundSpec) []specGroup {
	var order []string
	byName := make(map[string][]boundSpec)
	for _, b := range bound {
		if b.spec == nil || b.spec.Name == "" {
			continue
		}
		if _, ok := byName[b.spec.Name]; !ok {
			order = append(order, b.spec.Name)
		}
		byName[b.spec.Name] = append(byName[b.spec.Name], b)
	}
	groups := make([]specGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, specGroup{name: name, specs: byName[name]})
	}
	return groups
}

type boundVariant struct {
	spec  *variantSpec
	layer *Layer
}

type mergedVSet struct {
	names    []string
	seen     map[string]bool
	authored string
	variants map[string]boundVariant
}

// composePrim merges every opinion about one prim, strongest first: local
// specs, then reference/payload targets, then the selected variant of each
// set. A composition arc that fails to resolve marks the prim invalid but
// never aborts composition.
func (s *Stage) composePrim(parent *Prim, name string, bound []boundSpec, proxy bool, depth int) *Prim {
	path := parent.path + "/" + name
	if parent.path == "/" {
		path = "/" + name
	}
	p := &Prim{
		stage:  s,
		path:   path,
		parent: parent,
		valid:  true,
		active: true,
		proxy:  proxy,
		props:  make(map[string]any),
	}
	if depth > maxComposeDepth {
		p.valid = false
		return p
	}

	addProps := func(pm propertyMap) {
		for _, k := range pm.keys {
			if _, ok := p.props[k]; ok {
				continue
			}
			p.props[k] = pm.values[k]
			p.propKeys = append(p.propKeys, k)
		}
	}

	var vsetOrder []string
	vsets := make(map[string]*mergedVSet)
	absorbVSets := func(specSets []*variantSetSpec, anchor *Layer) {
		for _, set := range specSets {
			mv, ok := vsets[set.Name]
			if !ok {
				mv = &mergedVSet{seen: make(map[string]bool), variants: make(map[string]boundVariant)}
				vsets[set.Name] = mv
				vsetOrder = append(vsetOrder, set.Name)
			}
			if mv.authored == "" {
				mv.authored = set.Selection
			}
			for _, v := range set.Variants {
				if !mv.seen[v.Name] {
					mv.seen[v.Name] = true
					mv.names = append(mv.names, v.Name)
				}
				if _, ok := mv.variants[v.Name]; !ok {
					mv.variants[v.Name] = boundVariant{v, anchor}
				}
			}
		}
	}

	var childBound []boundSpec
	activeSet := false
	visitedRefs := make(map[string]bool)

	// The worklist grows as reference and payload arcs expand; appended
	// entries are weaker than everything already queued.
	work := slices.Clone(bound)
	for i := 0; i < len(work); i++ {
		b := work[i]
		sp := b.spec
		if p.typeName == "" {
			p.typeName = sp.Type
		}
		if sp.Active != nil && !activeSet {
			p.active = *sp.Active
			activeSet = true
		}
		if sp.Instanceable {
			p.instanceable = true
		}
		addProps(sp.Properties)
		absorbVSets(sp.VariantSets, b.layer)
		for _, c := range sp.Children {
			childBound = append(childBound, boundSpec{c, b.layer})
		}

		arcs := make([]string, 0, len(sp.References)+len(sp.Payloads))
		arcs = append(arcs, sp.References...)
		arcs = append(arcs, sp.Payloads...)
		for _, ref := range arcs {
			if ref == "" {
				continue
			}
			target, err := b.layer.Resolve(ref)
			if err != nil {
				p.valid = false
				continue
			}
			if visitedRefs[target.path] {
				continue
			}
			visitedRefs[target.path] = true
			if entry := target.entrySpec(); entry != nil {
				work = append(work, boundSpec{entry, target})
			}
		}
	}

	// Variant contributions come last. Only the selected variant of each set
	// contributes, and a broken arc inside it leaves the prim invalid.
	for _, setName := range vsetOrder {
		mv := vsets[setName]
		p.vsets = append(p.vsets, &VariantSet{
			stage:    s,
			primPath: path,
			name:     setName,
			names:    mv.names,
			authored: mv.authored,
			proxy:    proxy,
		})

		sel := mv.authored
		if override, ok := s.selection(path, setName); ok {
			sel = override
		}
		if sel == "" {
			continue
		}
		bv, ok := mv.variants[sel]
		if !ok {
			continue
		}
		addProps(bv.spec.Properties)
		for _, c := range bv.spec.Prims {
			childBound = append(childBound, boundSpec{c, bv.layer})
		}
		for _, ref := range bv.spec.References {
			if ref == "" {
				continue
			}
			target, err := bv.layer.Resolve(ref)
			if err != nil {
				p.valid = false
				continue
			}
			if entry := target.entrySpec(); entry != nil {
				if p.typeName == "" {
					p.typeName = entry.Type
				}
				addProps(entry.Properties)
				for _, c := range entry.Children {
					childBound = append(childBound, boundSpec{c, target})
				}
			}
		}
	}

	childProxy := proxy || p.instanceable
	for _, g := range groupByName(childBound) {
		p.children = append(p.children, s.composePrim(p, g.name, g.specs, childProxy, depth+1))
	}
	return p
}
