// Package config loads BuilderLimits presets from YAML files, so a
// deployment can tune resource caps without a recompile.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	streamjson "github.com/run2000/JSON-java-sub000"
)

// Limits mirrors streamjson.BuilderLimits field-for-field with YAML
// tags, since BuilderLimits itself carries no struct tags and
// sigs.k8s.io/yaml round-trips through encoding/json tags under the
// hood.
type Limits struct {
	MaxKeyLength                int    `json:"maxKeyLength"`
	MaxStringLength             int    `json:"maxStringLength"`
	MaxMantissaDigits           int    `json:"maxMantissaDigits"`
	MaxExponentDigits           int    `json:"maxExponentDigits"`
	MaxContentNodesPerContainer int    `json:"maxContentNodesPerContainer"`
	MaxNestingDepth             int    `json:"maxNestingDepth"`
	Preset                      string `json:"preset,omitempty"` // "default" or "secure", base preset before overrides
}

// Load reads a YAML limits file from path and returns the resulting
// BuilderLimits. An empty or absent numeric field falls back to the
// named Preset ("secure" if set, "default" otherwise), letting a
// config file override just the fields a deployment cares about.
func Load(path string) (streamjson.BuilderLimits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return streamjson.BuilderLimits{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var l Limits
	if err := yaml.Unmarshal(data, &l); err != nil {
		return streamjson.BuilderLimits{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return l.Resolve(), nil
}

// Resolve merges l over its named preset, treating a zero field as
// "inherit from the preset" rather than "explicitly zero", consistent
// with BuilderLimits' own "zero means unbounded" rule applying only
// to fields the caller actually set.
func (l Limits) Resolve() streamjson.BuilderLimits {
	base := streamjson.DefaultLimits()
	if l.Preset == "secure" {
		base = streamjson.SecureDefaults()
	}
	if l.MaxKeyLength != 0 {
		base.MaxKeyLength = l.MaxKeyLength
	}
	if l.MaxStringLength != 0 {
		base.MaxStringLength = l.MaxStringLength
	}
	if l.MaxMantissaDigits != 0 {
		base.MaxMantissaDigits = l.MaxMantissaDigits
	}
	if l.MaxExponentDigits != 0 {
		base.MaxExponentDigits = l.MaxExponentDigits
	}
	if l.MaxContentNodesPerContainer != 0 {
		base.MaxContentNodesPerContainer = l.MaxContentNodesPerContainer
	}
	if l.MaxNestingDepth != 0 {
		base.MaxNestingDepth = l.MaxNestingDepth
	}
	return base
}
