package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"attune/internal/extensions"
)

// ManifestFileName is the name of the declarative manifest file inside a
// project directory.
const ManifestFileName = "attune.yaml"

// ParamBinding is one declared parameter value before collapsing: a default
// value plus optional per-environment overrides.
//
// In YAML a binding is either a plain scalar (the value) or a mapping with
// "value" and "env" keys:
//
//	params:
//	  logger:
//	    LOG_LEVEL: debug
//	    BUCKET:
//	      value: ${PROJECT_ID}-artifacts
//	      env:
//	        staging: ${PROJECT_ID}-staging-artifacts
type ParamBinding struct {
	// Value is the default parameter value.
	Value string `yaml:"value"`

	// Env maps environment names (project ids or aliases) to overriding
	// values.
	Env map[string]string `yaml:"env,omitempty"`
}

// UnmarshalYAML accepts both the scalar shorthand and the full mapping form.
func (b *ParamBinding) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		b.Value = node.Value
		b.Env = nil
		return nil
	}

	type rawBinding ParamBinding
	var raw rawBinding
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*b = ParamBinding(raw)
	return nil
}

// Resolve returns the binding's value for the given environment, falling
// back to the default value when no override matches.
func (b ParamBinding) Resolve(env string) string {
	if v, ok := b.Env[env]; ok {
		return v
	}
	return b.Value
}

// ManifestInstanceSpec is one declared extension instance before parameter
// collapsing: the instance id, the extension reference string, and parameter
// bindings that still carry per-environment options.
type ManifestInstanceSpec struct {
	// InstanceID is the declared instance identifier.
	InstanceID string

	// Ref is the raw "publisher/extensionID[@version]" reference string.
	Ref string

	// Params are the instance's declared parameter bindings.
	Params map[string]ParamBinding
}

// CollapseParams flattens the instance's parameter bindings to single string
// values for the given environment.
func (s ManifestInstanceSpec) CollapseParams(env string) map[string]string {
	collapsed := make(map[string]string, len(s.Params))
	for key, binding := range s.Params {
		collapsed[key] = binding.Resolve(env)
	}
	return collapsed
}

// Manifest is the parsed declarative manifest of a project.
//
// Instances preserves the declaration order of the manifest's extensions
// mapping: planning output and aggregated error reports follow the order the
// author wrote.
type Manifest struct {
	// Project is the default target project id.
	Project string

	// Instances are the declared extension instances, in declaration order.
	Instances []ManifestInstanceSpec
}

// Entries converts the manifest's declared instances to the planner's input
// shape, preserving declaration order.
func (m Manifest) Entries() []extensions.ManifestEntry {
	entries := make([]extensions.ManifestEntry, 0, len(m.Instances))
	for _, instance := range m.Instances {
		entries = append(entries, extensions.ManifestEntry{
			InstanceID: instance.InstanceID,
			Ref:        instance.Ref,
		})
	}
	return entries
}

// manifestDoc is the raw YAML shape of the manifest file. The extensions
// mapping is kept as a yaml.Node so declaration order survives decoding.
type manifestDoc struct {
	Project    string                             `yaml:"project"`
	Extensions yaml.Node                          `yaml:"extensions"`
	Params     map[string]map[string]ParamBinding `yaml:"params"`
}

// instancesFromNode walks the extensions mapping node in document order.
func instancesFromNode(node yaml.Node, params map[string]map[string]ParamBinding) ([]ManifestInstanceSpec, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("extensions section must be a mapping of instance id to extension ref")
	}

	// Mapping node content alternates key, value.
	instances := make([]ManifestInstanceSpec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("extension %q: ref must be a string", key.Value)
		}
		instances = append(instances, ManifestInstanceSpec{
			InstanceID: key.Value,
			Ref:        value.Value,
			Params:     params[key.Value],
		})
	}
	return instances, nil
}
