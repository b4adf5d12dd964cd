package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"go.yaml.in/yaml/v3"
)

// Extension is the content of a catalog extension file.
type Extension struct {
	Tools   []domain.ToolDefinition `yaml:"tools"`
	Aliases map[string]string       `yaml:"aliases"`
}

// LoadExtension reads additional tool definitions and aliases from a YAML file.
func LoadExtension(path string) (Extension, error) {
	file, err := os.Open(path)
	if err != nil {
		return Extension{}, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	var ext Extension
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&ext); err != nil {
		return Extension{}, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}
	return ext, nil
}

// LoadExtensions merges every catalog file matching pattern, which may use
// doublestar globs such as "tools/**/*.yaml". Files are read in lexical order.
func LoadExtensions(pattern string) (Extension, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return Extension{}, fmt.Errorf("invalid catalog file pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return Extension{}, fmt.Errorf("no catalog file matches %q", pattern)
	}
	sort.Strings(paths)

	merged := Extension{Aliases: map[string]string{}}
	for _, path := range paths {
		ext, err := LoadExtension(path)
		if err != nil {
			return Extension{}, err
		}
		merged.Tools = append(merged.Tools, ext.Tools...)
		for alias, target := range ext.Aliases {
			if prev, ok := merged.Aliases[alias]; ok && prev != target {
				return Extension{}, fmt.Errorf("alias %s maps to both %s and %s (%s)", alias, prev, target, path)
			}
			merged.Aliases[alias] = target
		}
	}
	return merged, nil
}
