// Package scene opens layered scene descriptions and exposes the composed
// prim tree, the ordered layer stack and per-prim variant selection state.
//
// Layers are YAML documents. A stage owns the composed view of one root
// layer plus its flattened sub-layer stack; it is the only mutable object in
// the package, and the only mutation it supports is variant selection.
package scene

import (
	"fmt"
	"strings"
)

// Stage is the composed scene for one root layer. A stage is not safe for
// concurrent use; callers own it exclusively for the duration of a run.
type Stage struct {
	root       *Layer
	stack      []*Layer // nil entries mark sub-layers that failed to resolve
	pseudoRoot *Prim

	// selections holds stage-level variant selections, keyed by prim path
	// and then variant set name. They override authored selections.
	selections map[string]map[string]string
}

// Open composes the scene description rooted at path. The returned stage
// holds the flattened layer stack, outermost first.
func Open(path string) (*Stage, error) {
	root, err := FindOrOpenLayer(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}

	s := &Stage{
		root:       root,
		selections: make(map[string]map[string]string),
	}
	s.stack = flattenStack(root, make(map[string]bool))
	s.compose()
	return s, nil
}

// flattenStack builds the layer stack depth-first: the layer itself, then
// each sub-layer's own stack in declared order. Unresolvable sub-layers keep
// their slot as a nil entry.
func flattenStack(l *Layer, visited map[string]bool) []*Layer {
	if visited[l.path] {
		return nil
	}
	visited[l.path] = true

	stack := []*Layer{l}
	for _, sub := range l.SubLayerPaths() {
		resolved, err := l.Resolve(sub)
		if err != nil {
			stack = append(stack, nil)
			continue
		}
		stack = append(stack, flattenStack(resolved, visited)...)
	}
	return stack
}

// RootLayer returns the stage's entry layer.
func (s *Stage) RootLayer() *Layer { return s.root }

// LayerStack returns the flattened layer stack, outermost first. Entries may
// be nil where a sub-layer could not be resolved.
func (s *Stage) LayerStack() []*Layer { return s.stack }

// PseudoRoot returns the root of the composed prim tree.
func (s *Stage) PseudoRoot() *Prim { return s.pseudoRoot }

// PrimAtPath resolves a composed prim by absolute path, or nil when no prim
// exists there in the current composition.
func (s *Stage) PrimAtPath(path string) *Prim {
	if path == "/" {
		return s.pseudoRoot
	}
	cur := s.pseudoRoot
	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if part == "" {
			return nil
		}
		var next *Prim
		for _, c := range cur.children {
			if c.name() == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Traverse returns the composed prims in pre-order, skipping inactive
// subtrees and instance proxies. This mirrors default stage traversal.
func (s *Stage) Traverse() []*Prim {
	var out []*Prim
	var walk func(p *Prim)
	walk = func(p *Prim) {
		for _, c := range p.children {
			if !c.active || c.proxy {
				continue
			}
			out = append(out, c)
			walk(c)
		}
	}
	walk(s.pseudoRoot)
	return out
}

// TraverseAll returns every composed prim in pre-order, including inactive
// prims and instance proxies. Variant sets may live on prims invisible to
// default traversal, so the variants check uses this mode.
func (s *Stage) TraverseAll() []*Prim {
	var out []*Prim
	var walk func(p *Prim)
	walk = func(p *Prim) {
		for _, c := range p.children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(s.pseudoRoot)
	return out
}

// selection returns the stage-level selection override for a prim's set.
func (s *Stage) selection(primPath, setName string) (string, bool) {
	sets, ok := s.selections[primPath]
	if !ok {
		return "", false
	}
	sel, ok := sets[setName]
	return sel, ok
}

// setSelection records a stage-level selection and recomposes the prim tree.
func (s *Stage) setSelection(primPath, setName, variant string) {
	sets := s.selections[primPath]
	if sets == nil {
		sets = make(map[string]string)
		s.selections[primPath] = sets
	}
	sets[setName] = variant
	s.compose()
}

func (p *Prim) name() string {
	if i := strings.LastIndex(p.path, "/"); i >= 0 {
		return p.path[i+1:]
	}
	return p.path
}
