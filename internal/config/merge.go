package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyUpstream = "upstream"
	keyDisplay  = "display"
	keyFilter   = "filter"
	keyLogging  = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyUpstream: true,
	keyDisplay:  true,
	keyFilter:   true,
	keyLogging:  true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// the target Config. Fields named inside a section replace the target's
// values; sections and fields absent from the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	// Discover which top-level keys are present in the overlay.
	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so we can unmarshal it onto the
		// strongly-typed target field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes raw YAML bytes onto the field of target selected
// by key. Sections hold only scalars, so decoding onto the existing value
// overrides exactly the fields the overlay names.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyUpstream:
		return yaml.Unmarshal(data, &target.Upstream)
	case keyDisplay:
		return yaml.Unmarshal(data, &target.Display)
	case keyFilter:
		return yaml.Unmarshal(data, &target.Filter)
	case keyLogging:
		return yaml.Unmarshal(data, &target.Logging)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
