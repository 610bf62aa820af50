package scene

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// propertyMap is an insertion-ordered property bag. Ordering matters because
// diagnostics are reported in authored order and must be stable across runs.
type propertyMap struct {
	keys   []string
	values map[string]any
}

// UnmarshalYAML decodes a YAML mapping while preserving key order.
func (pm *propertyMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("properties must be a mapping, got %v", node.Kind)
	}
	pm.values = make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		var val any
		if err := node.Content[i+1].Decode(&val); err != nil {
			return err
		}
		if _, dup := pm.values[key]; !dup {
			pm.keys = append(pm.keys, key)
		}
		pm.values[key] = val
	}
	return nil
}

func (pm *propertyMap) get(key string) (any, bool) {
	v, ok := pm.values[key]
	return v, ok
}

// Prim is one node of the composed scene. Prims are snapshots: mutating
// variant selections on the stage recomposes the tree, and previously fetched
// prims must be re-resolved through Stage.PrimAtPath.
type Prim struct {
	stage        *Stage
	path         string
	typeName     string
	active       bool
	proxy        bool
	valid        bool
	instanceable bool

	propKeys []string
	props    map[string]any

	vsets    []*VariantSet
	parent   *Prim
	children []*Prim
}

// Path returns the prim's absolute path in the composed scene.
func (p *Prim) Path() string { return p.path }

// TypeName returns the prim's schema type, e.g. "Xform", "Mesh" or "Shader".
func (p *Prim) TypeName() string { return p.typeName }

// IsValid reports whether every composition arc on the prim resolved.
func (p *Prim) IsValid() bool { return p.valid }

// Active reports whether the prim is active in the composed scene.
func (p *Prim) Active() bool { return p.active }

// IsInstanceProxy reports whether the prim is reached through an instanced
// ancestor. Instance proxies are read-only.
func (p *Prim) IsInstanceProxy() bool { return p.proxy }

// Parent returns the prim's parent, or nil for root prims.
func (p *Prim) Parent() *Prim { return p.parent }

// Children returns the prim's composed children in declaration order.
func (p *Prim) Children() []*Prim { return p.children }

// PropertyNames returns the prim's property names in authored order.
func (p *Prim) PropertyNames() []string { return p.propKeys }

// Attr returns the named attribute and whether it exists on the prim.
func (p *Prim) Attr(name string) (Attribute, bool) {
	v, ok := p.props[name]
	if !ok {
		return Attribute{}, false
	}
	return Attribute{name: name, value: v}, true
}

// Inputs returns the prim's declared input attributes ("inputs:" namespace)
// in authored order.
func (p *Prim) Inputs() []Attribute {
	var out []Attribute
	for _, k := range p.propKeys {
		if strings.HasPrefix(k, "inputs:") {
			out = append(out, Attribute{name: k, value: p.props[k]})
		}
	}
	return out
}

// VariantSets returns the prim's variant sets in declared order.
func (p *Prim) VariantSets() []*VariantSet { return p.vsets }

// Attribute is one typed property value on a composed prim. Typed accessors
// return ok=false when the authored value cannot be read as the requested
// type; that is distinct from the attribute being absent.
type Attribute struct {
	name  string
	value any
}

// Name returns the full attribute name including any namespace prefix.
func (a Attribute) Name() string { return a.name }

// BaseName returns the attribute name without its namespace prefix.
func (a Attribute) BaseName() string {
	if i := strings.LastIndex(a.name, ":"); i >= 0 {
		return a.name[i+1:]
	}
	return a.name
}

// String reads the value as a string.
func (a Attribute) String() (string, bool) {
	s, ok := a.value.(string)
	return s, ok
}

// StringList reads the value as a list of strings.
func (a Attribute) StringList() ([]string, bool) {
	raw, ok := a.value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Vec3Array reads the value as an array of 3-component float vectors.
func (a Attribute) Vec3Array() ([][3]float64, bool) {
	raw, ok := a.value.([]any)
	if !ok {
		return nil, false
	}
	out := make([][3]float64, 0, len(raw))
	for _, item := range raw {
		vec, ok := item.([]any)
		if !ok || len(vec) != 3 {
			return nil, false
		}
		var v [3]float64
		for i, c := range vec {
			f, ok := toFloat(c)
			if !ok {
				return nil, false
			}
			v[i] = f
		}
		out = append(out, v)
	}
	return out, true
}

// Connection returns the upstream connection target authored on the
// attribute, e.g. "/World/Looks/Tex.outputs:rgb", and whether one exists.
func (a Attribute) Connection() (string, bool) {
	m, ok := a.value.(map[string]any)
	if !ok {
		return "", false
	}
	target, ok := m["connect"].(string)
	if !ok || target == "" {
		return "", false
	}
	return target, true
}

// SplitConnection splits a connection target into its prim path and property
// name components.
func SplitConnection(target string) (primPath, property string) {
	if i := strings.LastIndex(target, "."); i >= 0 {
		return target[:i], target[i+1:]
	}
	return target, ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
