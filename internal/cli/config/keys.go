package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/steviee/cfbrowse/internal/state"
	"gopkg.in/yaml.v3"
)

// toMap renders cfg as nested maps keyed by its YAML names.
func toMap(cfg *state.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return values, nil
}

// fromMap decodes nested maps back into a config.
func fromMap(values map[string]any) (*state.Config, error) {
	data, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := state.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// lookup returns the value at a dotted key such as "cache.stale_time".
func lookup(values map[string]any, key string) (any, error) {
	parts := strings.Split(key, ".")
	var current any = values

	for i, part := range parts {
		section, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unknown key %q: %q is not a section", key, strings.Join(parts[:i], "."))
		}
		current, ok = section[part]
		if !ok {
			return nil, fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(knownKeys(values, ""), ", "))
		}
	}
	return current, nil
}

// assign replaces the leaf at key with raw parsed as YAML.
func assign(values map[string]any, key, raw string) error {
	existing, err := lookup(values, key)
	if err != nil {
		return err
	}
	if _, isSection := existing.(map[string]any); isSection {
		return fmt.Errorf("%q is a section, set one of its keys instead", key)
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
		return fmt.Errorf("parse value %q: %w", raw, err)
	}

	parts := strings.Split(key, ".")
	section := values
	for _, part := range parts[:len(parts)-1] {
		section = section[part].(map[string]any)
	}
	section[parts[len(parts)-1]] = parsed
	return nil
}

// knownKeys lists every dotted leaf key, sorted.
func knownKeys(values map[string]any, prefix string) []string {
	var keys []string
	for name, v := range values {
		full := prefix + name
		if section, ok := v.(map[string]any); ok {
			keys = append(keys, knownKeys(section, full+".")...)
			continue
		}
		keys = append(keys, full)
	}
	sort.Strings(keys)
	return keys
}
