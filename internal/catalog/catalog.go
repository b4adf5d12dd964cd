package catalog

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sort"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/go-playground/validator/v10"
)

var toolNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var _ domain.ToolCatalog = (*Catalog)(nil)

// Catalog is the static registry of tool definitions.
type Catalog struct {
	tools    map[string]domain.ToolDefinition
	aliases  map[string]string
	patterns map[string]*regexp.Regexp
}

// Options tune how definitions are completed when loaded.
type Options struct {
	DefaultTimeout  time.Duration
	DefaultCacheTTL time.Duration
}

// New validates defs and builds a Catalog. Aliases extend the legacy alias table.
func New(opts Options, defs []domain.ToolDefinition, aliases map[string]string) (*Catalog, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("toolname", func(fl validator.FieldLevel) bool {
		return toolNameRe.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	c := &Catalog{
		tools:    make(map[string]domain.ToolDefinition, len(defs)),
		aliases:  maps.Clone(legacyAliases),
		patterns: make(map[string]*regexp.Regexp),
	}
	maps.Copy(c.aliases, aliases)

	for _, def := range defs {
		if err := validate.Struct(def); err != nil {
			return nil, fmt.Errorf("invalid tool definition %q: %w", def.Name, err)
		}
		if _, exists := c.tools[def.Name]; exists {
			return nil, fmt.Errorf("duplicate tool definition %q", def.Name)
		}
		if def.Timeout == 0 {
			def.Timeout = opts.DefaultTimeout
		}
		if def.Cacheable && def.CacheTTL == 0 {
			def.CacheTTL = opts.DefaultCacheTTL
		}
		seen := map[string]bool{}
		for _, p := range def.Parameters {
			if seen[p.Name] {
				return nil, fmt.Errorf("tool %q declares parameter %q twice", def.Name, p.Name)
			}
			seen[p.Name] = true
			if p.Pattern == "" {
				continue
			}
			re, err := regexp.Compile(p.Pattern)
			if err != nil {
				return nil, fmt.Errorf("tool %q parameter %q has invalid pattern: %w", def.Name, p.Name, err)
			}
			c.patterns[patternKey(def.Name, p.Name)] = re
		}
		for _, name := range endpointPlaceholders(def.Endpoint) {
			if p, ok := def.Parameter(name); !ok || !p.Required {
				return nil, fmt.Errorf("tool %q endpoint references %q which is not a required parameter", def.Name, name)
			}
		}
		c.tools[def.Name] = def
	}

	for alias, target := range c.aliases {
		if _, ok := c.tools[target]; !ok {
			delete(c.aliases, alias)
		}
	}

	for _, def := range c.tools {
		for _, name := range def.Invalidates {
			if _, ok := c.tools[name]; !ok {
				return nil, fmt.Errorf("tool %q invalidates unknown tool %q", def.Name, name)
			}
		}
	}
	return c, nil
}

// Lookup returns the definition of name, resolving legacy aliases.
func (c *Catalog) Lookup(name string) (domain.ToolDefinition, bool) {
	def, ok := c.tools[resolveAlias(c.aliases, name)]
	return def, ok
}

// List returns all definitions sorted by name.
func (c *Catalog) List() []domain.ToolDefinition {
	res := make([]domain.ToolDefinition, 0, len(c.tools))
	for _, def := range c.tools {
		res = append(res, def)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}

// Aliases returns the alias names sorted alphabetically.
func (c *Catalog) Aliases() []string {
	return slices.Sorted(maps.Keys(c.aliases))
}

// ValidateArguments checks args against the parameter schema of name.
func (c *Catalog) ValidateArguments(name string, args map[string]any) []domain.ArgumentViolation {
	def, ok := c.Lookup(name)
	if !ok {
		return []domain.ArgumentViolation{{
			Kind:    domain.ErrorKind_UnknownTool,
			Message: fmt.Sprintf("tool '%s' is not registered", name),
		}}
	}

	var violations []domain.ArgumentViolation
	for _, p := range def.Parameters {
		value, present := args[p.Name]
		if !present || value == nil {
			if p.Required {
				violations = append(violations, domain.ArgumentViolation{
					Parameter: p.Name,
					Kind:      domain.ErrorKind_MissingRequiredParam,
					Message:   fmt.Sprintf("missing required parameter '%s'", p.Name),
				})
			}
			continue
		}
		if msg := checkValue(p, c.patterns[patternKey(def.Name, p.Name)], value); msg != "" {
			violations = append(violations, domain.ArgumentViolation{
				Parameter: p.Name,
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   msg,
			})
		}
	}

	unknown := make([]string, 0)
	for key := range args {
		if _, ok := def.Parameter(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		violations = append(violations, domain.ArgumentViolation{
			Parameter: key,
			Kind:      domain.ErrorKind_InvalidArguments,
			Message:   fmt.Sprintf("unknown parameter '%s'", key),
		})
	}
	return violations
}

// ApplyDefaults returns a copy of args with parameter defaults filled in.
func ApplyDefaults(def domain.ToolDefinition, args map[string]any) map[string]any {
	res := make(map[string]any, len(args)+len(def.Parameters))
	maps.Copy(res, args)
	for _, p := range def.Parameters {
		if _, ok := res[p.Name]; !ok && p.Default != nil {
			res[p.Name] = p.Default
		}
	}
	return res
}

var placeholderRe = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

func endpointPlaceholders(e *domain.Endpoint) []string {
	if e == nil {
		return nil
	}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(e.Path, -1) {
		names = append(names, m[1])
	}
	return names
}

func patternKey(tool, param string) string {
	return tool + "." + param
}
