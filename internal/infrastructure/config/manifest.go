package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Manifest lists the script categories a launcher run should load.
type Manifest struct {
	SearchPath []string       `json:"search_path" yaml:"search_path" toml:"search_path"`
	Categories []CategorySpec `json:"categories" yaml:"categories" toml:"categories"`
}

// CategorySpec names one script module. Alias, when set, is the registry key
// used instead of the module identifier.
type CategorySpec struct {
	Module string `json:"module" yaml:"module" toml:"module"`
	Alias  string `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`
}

// Key returns the registry key for the category.
func (s CategorySpec) Key() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Module
}

// LoadManifest reads a manifest, choosing the decoder from the file
// extension. Relative search path entries are resolved against the manifest's
// directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := ParseManifest(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, dir := range m.SearchPath {
		if !filepath.IsAbs(dir) {
			m.SearchPath[i] = filepath.Join(base, dir)
		}
	}
	return m, nil
}

// ParseManifest decodes manifest data in the format named by ext
// (".yaml", ".yml", ".toml" or ".json") and validates it.
func ParseManifest(ext string, data []byte) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	case ".json":
		if err := sonic.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", ext)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every category names a module and that registry keys
// are unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Categories))
	for i, spec := range m.Categories {
		if spec.Module == "" {
			return fmt.Errorf("category %d: module is required", i)
		}
		key := spec.Key()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("category %d: duplicate key %q", i, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
