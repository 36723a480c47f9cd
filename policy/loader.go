package policy

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File represents the structure of the delivery policy YAML file
type File struct {
	MaxAttempts    *int     `yaml:"max_attempts"`
	BackoffBase    string   `yaml:"backoff_base"`
	RequestTimeout string   `yaml:"request_timeout"`
	EventTypes     []string `yaml:"event_types"`
}

// Load reads a policy file. Keys missing from the file keep their defaults.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a policy from YAML and validates it
func Parse(data []byte) (Policy, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Policy{}, fmt.Errorf("parsing policy YAML: %w", err)
	}

	p := Default()
	if f.MaxAttempts != nil {
		p.MaxAttempts = *f.MaxAttempts
	}
	if f.BackoffBase != "" {
		d, err := time.ParseDuration(f.BackoffBase)
		if err != nil {
			return Policy{}, fmt.Errorf("invalid backoff_base: %w", err)
		}
		p.BackoffBase = d
	}
	if f.RequestTimeout != "" {
		d, err := time.ParseDuration(f.RequestTimeout)
		if err != nil {
			return Policy{}, fmt.Errorf("invalid request_timeout: %w", err)
		}
		p.RequestTimeout = d
	}
	p.EventTypes = f.EventTypes

	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("validating policy: %w", err)
	}
	return p, nil
}

// LoadOrDefault loads path when set, otherwise returns Default
func LoadOrDefault(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
