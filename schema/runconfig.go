package schema

// RunConfig decides which checks execute for one invocation.
// It is built once from CLI/env/file input and immutable afterwards.
type RunConfig struct {
	Geometry bool
	Shaders  bool
	Layers   bool
	Variants bool
}

// DefaultRunConfig returns a RunConfig with every check enabled.
func DefaultRunConfig() RunConfig {
	return RunConfig{Geometry: true, Shaders: true, Layers: true, Variants: true}
}

// OnlyRunConfig returns a RunConfig with a single check enabled.
func OnlyRunConfig(id CheckID) RunConfig {
	var rc RunConfig
	rc.setEnabled(id, true)
	return rc
}

// Enabled reports whether the given check should run.
func (rc RunConfig) Enabled(id CheckID) bool {
	switch id {
	case GeometryCheck:
		return rc.Geometry
	case ShadersCheck:
		return rc.Shaders
	case LayersCheck:
		return rc.Layers
	case VariantsCheck:
		return rc.Variants
	default:
		return false
	}
}

// HasEnabled reports whether at least one check is enabled.
// Configurations violating this are rejected before any scene is opened.
func (rc RunConfig) HasEnabled() bool {
	return rc.Geometry || rc.Shaders || rc.Layers || rc.Variants
}

func (rc *RunConfig) setEnabled(id CheckID, on bool) {
	switch id {
	case GeometryCheck:
		rc.Geometry = on
	case ShadersCheck:
		rc.Shaders = on
	case LayersCheck:
		rc.Layers = on
	case VariantsCheck:
		rc.Variants = on
	}
}

// Skip disables a single check. Each skip targets its own category only.
func (rc *RunConfig) Skip(id CheckID) {
	rc.setEnabled(id, false)
}
