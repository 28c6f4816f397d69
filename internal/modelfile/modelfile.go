// Package modelfile loads initial model values for controllers from YAML or
// JSON files. The top-level keys name controllers; each maps to the values
// its initializer sets.
//
//	demo:
//	  name: World
//	  user:
//	    email: ann@example.com
package modelfile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// Model maps controller names to their initial values.
type Model map[string]map[string]any

// Controllers lists the controller names in sorted order.
func (m Model) Controllers() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the values declared for controller, never nil.
func (m Model) Values(controller string) map[string]any {
	if values, ok := m[controller]; ok && values != nil {
		return values
	}
	return map[string]any{}
}

// Load reads path from fsys. Files ending in .json are decoded as JSON,
// everything else as YAML.
func Load(fsys fs.FS, path string) (Model, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data using the format implied by path's extension.
func Parse(data []byte, path string) (Model, error) {
	var raw map[string]map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("modelfile: decode %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("modelfile: decode %s: %w", path, err)
		}
	}

	model := make(Model, len(raw))
	for name, values := range raw {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("modelfile: file %s defines an empty controller name", path)
		}
		if _, exists := model[trimmed]; exists {
			return nil, fmt.Errorf("modelfile: duplicate controller %q (file %s)", trimmed, path)
		}
		if values == nil {
			values = map[string]any{}
		}
		model[trimmed] = values
	}
	return model, nil
}

// Changed returns the sorted keys whose values differ between before and
// after, including keys present on only one side.
func Changed(before, after map[string]any) []string {
	var keys []string
	for key, value := range after {
		previous, ok := before[key]
		if !ok || !cmp.Equal(previous, value) {
			keys = append(keys, key)
		}
	}
	for key := range before {
		if _, ok := after[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// SortedKeys returns the keys of values in sorted order, giving
// initializers a deterministic Set sequence.
func SortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
