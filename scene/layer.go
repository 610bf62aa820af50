package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// layerDoc is the on-disk YAML shape of one layer document.
type layerDoc struct {
	Identifier  string      `yaml:"identifier"`
	Anonymous   bool        `yaml:"anonymous"`
	DefaultPrim string      `yaml:"defaultPrim"`
	SubLayers   []string    `yaml:"subLayers"`
	References  []string    `yaml:"references"`
	Payloads    []string    `yaml:"payloads"`
	Prims       []*primSpec `yaml:"prims"`
}

// primSpec is one prim declaration inside a layer document.
type primSpec struct {
	Name         string            `yaml:"name"`
	Type         string            `yaml:"type"`
	Active       *bool             `yaml:"active"`
	Instanceable bool              `yaml:"instanceable"`
	Properties   propertyMap       `yaml:"properties"`
	References   []string          `yaml:"references"`
	Payloads     []string          `yaml:"payloads"`
	VariantSets  []*variantSetSpec `yaml:"variantSets"`
	Children     []*primSpec       `yaml:"children"`
}

type variantSetSpec struct {
	Name      string         `yaml:"name"`
	Selection string         `yaml:"selection"`
	Variants  []*variantSpec `yaml:"variants"`
}

type variantSpec struct {
	Name       string      `yaml:"name"`
	Properties propertyMap `yaml:"properties"`
	References []string    `yaml:"references"`
	Prims      []*primSpec `yaml:"prims"`
}

// Layer is one ordered source of scene description. Layers are immutable once
// opened; selection state lives on the Stage, never here.
type Layer struct {
	path string // cleaned absolute file path
	dir  string
	doc  *layerDoc
}

// layerRegistry caches successfully opened layers by absolute path, so that
// repeated resolution of the same asset returns the same *Layer.
var layerRegistry = struct {
	sync.RWMutex
	layers map[string]*Layer
}{layers: make(map[string]*Layer)}

// FindOrOpenLayer opens the layer document at path, reusing a previously
// opened layer when possible. Relative paths are anchored at the current
// working directory; use Layer.Resolve for paths authored inside a layer.
func FindOrOpenLayer(path string) (*Layer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve layer path %q: %w", path, err)
	}
	abs = filepath.Clean(abs)

	layerRegistry.RLock()
	cached := layerRegistry.layers[abs]
	layerRegistry.RUnlock()
	if cached != nil {
		return cached, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("open layer %q: %w", path, err)
	}
	doc := &layerDoc{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse layer %q: %w", path, err)
	}

	l := &Layer{path: abs, dir: filepath.Dir(abs), doc: doc}

	layerRegistry.Lock()
	layerRegistry.layers[abs] = l
	layerRegistry.Unlock()
	return l, nil
}

// Identifier returns the layer's identifier: the authored identifier when the
// document declares one, the absolute file path otherwise.
func (l *Layer) Identifier() string {
	if l.doc.Identifier != "" {
		return l.doc.Identifier
	}
	return l.path
}

// Anonymous reports whether the layer is an in-memory/session layer rather
// than a persistent asset.
func (l *Layer) Anonymous() bool {
	return l.doc.Anonymous
}

// HasDefaultPrim reports whether the layer declares a default root prim.
func (l *Layer) HasDefaultPrim() bool {
	return l.doc.DefaultPrim != ""
}

// DefaultPrim returns the declared default root prim name, if any.
func (l *Layer) DefaultPrim() string {
	return l.doc.DefaultPrim
}

// SubLayerPaths returns the authored sub-layer paths in declared order.
func (l *Layer) SubLayerPaths() []string {
	return l.doc.SubLayers
}

// Resolve opens another layer referenced from this one. Relative paths are
// anchored at this layer's directory.
func (l *Layer) Resolve(ref string) (*Layer, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty asset path")
	}
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(l.dir, ref)
	}
	return FindOrOpenLayer(ref)
}

// RootSpec is the layer's declaration at the absolute root path. It carries
// the reference and payload lists authored on the root.
type RootSpec struct {
	References []string
	Payloads   []string
}

// RootSpec returns the layer's root prim declaration, or nil when the layer
// declares no prims and no root-level arcs. Such a layer may legitimately be
// a library or session layer.
func (l *Layer) RootSpec() *RootSpec {
	if len(l.doc.Prims) == 0 && len(l.doc.References) == 0 && len(l.doc.Payloads) == 0 {
		return nil
	}
	return &RootSpec{References: l.doc.References, Payloads: l.doc.Payloads}
}

// ExternalReferences returns every external asset path the layer declares:
// sub-layers, references and payloads, at the root and on every prim spec,
// in declared order with duplicates removed.
func (l *Layer) ExternalReferences() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(refs []string) {
		for _, r := range refs {
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	add(l.doc.SubLayers)
	add(l.doc.References)
	add(l.doc.Payloads)

	var walk func(specs []*primSpec)
	walk = func(specs []*primSpec) {
		for _, s := range specs {
			add(s.References)
			add(s.Payloads)
			for _, vs := range s.VariantSets {
				for _, v := range vs.Variants {
					add(v.References)
					walk(v.Prims)
				}
			}
			walk(s.Children)
		}
	}
	walk(l.doc.Prims)
	return out
}

// rootSpecs returns the layer's top-level prim specs.
func (l *Layer) rootSpecs() []*primSpec {
	return l.doc.Prims
}

// entrySpec returns the prim spec a reference arc targets: the declared
// default prim when present, the first root prim otherwise.
func (l *Layer) entrySpec() *primSpec {
	if l.doc.DefaultPrim != "" {
		for _, s := range l.doc.Prims {
			if s.Name == l.doc.DefaultPrim {
				return s
			}
		}
	}
	if len(l.doc.Prims) > 0 {
		return l.doc.Prims[0]
	}
	return nil
}
