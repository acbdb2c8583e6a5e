package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI     = "api"
	keyView    = "view"
	keyLogging = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyAPI:     true,
	keyView:    true,
	keyLogging: true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// the target Config. Fields set in an overlay section override the target;
// fields and sections absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

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

// unmarshalSection unmarshals raw YAML bytes into a copy of the matching
// section of target, so fields missing from the overlay keep their values.
// The copy is only assigned back when decoding succeeds.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyAPI:
		v := target.API
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.API = v
		return nil
	case keyView:
		v := target.View
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.View = v
		return nil
	case keyLogging:
		v := target.Logging
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
}
