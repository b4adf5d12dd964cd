package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(Options{DefaultTimeout: 30 * time.Second, DefaultCacheTTL: 5 * time.Minute}, BuiltinDefinitions(), nil)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	validDef := domain.ToolDefinition{
		Name:        "echo",
		Category:    "test",
		Description: "Echo arguments.",
		Parameters:  []domain.ParameterSpec{{Name: "text", Type: domain.ParamType_String}},
	}

	tests := map[string]struct {
		defs        []domain.ToolDefinition
		aliases     map[string]string
		expectedErr string
		validate    func(t *testing.T, c *Catalog)
	}{
		"defaults-applied": {
			defs: []domain.ToolDefinition{
				validDef,
				{Name: "cached", Category: "test", Description: "Cached.", Cacheable: true},
			},
			validate: func(t *testing.T, c *Catalog) {
				def, ok := c.Lookup("echo")
				require.True(t, ok)
				assert.Equal(t, 30*time.Second, def.Timeout)
				assert.Zero(t, def.CacheTTL)

				cached, ok := c.Lookup("cached")
				require.True(t, ok)
				assert.Equal(t, 5*time.Minute, cached.CacheTTL)
			},
		},
		"alias-to-unknown-target-dropped": {
			defs:    []domain.ToolDefinition{validDef},
			aliases: map[string]string{"say": "echo", "ghost": "missing"},
			validate: func(t *testing.T, c *Catalog) {
				assert.Equal(t, []string{"say"}, c.Aliases())
				def, ok := c.Lookup("say")
				require.True(t, ok)
				assert.Equal(t, "echo", def.Name)
			},
		},
		"duplicate-tool": {
			defs:        []domain.ToolDefinition{validDef, validDef},
			expectedErr: `duplicate tool definition "echo"`,
		},
		"invalid-tool-name": {
			defs:        []domain.ToolDefinition{{Name: "Echo-Tool", Category: "test", Description: "x"}},
			expectedErr: `invalid tool definition "Echo-Tool"`,
		},
		"invalid-parameter-type": {
			defs: []domain.ToolDefinition{{
				Name: "echo", Category: "test", Description: "x",
				Parameters: []domain.ParameterSpec{{Name: "p", Type: "date"}},
			}},
			expectedErr: `invalid tool definition "echo"`,
		},
		"duplicate-parameter": {
			defs: []domain.ToolDefinition{{
				Name: "echo", Category: "test", Description: "x",
				Parameters: []domain.ParameterSpec{
					{Name: "p", Type: domain.ParamType_String},
					{Name: "p", Type: domain.ParamType_Int},
				},
			}},
			expectedErr: `declares parameter "p" twice`,
		},
		"invalid-pattern": {
			defs: []domain.ToolDefinition{{
				Name: "echo", Category: "test", Description: "x",
				Parameters: []domain.ParameterSpec{{Name: "p", Type: domain.ParamType_String, Pattern: "("}},
			}},
			expectedErr: "invalid pattern",
		},
		"endpoint-placeholder-not-required": {
			defs: []domain.ToolDefinition{{
				Name: "echo", Category: "test", Description: "x",
				Parameters: []domain.ParameterSpec{{Name: "text", Type: domain.ParamType_String}},
				Endpoint:   &domain.Endpoint{Method: "GET", Path: "/echo/{text}"},
			}},
			expectedErr: `endpoint references "text"`,
		},
		"endpoint-invalid-method": {
			defs: []domain.ToolDefinition{{
				Name: "echo", Category: "test", Description: "x",
				Endpoint: &domain.Endpoint{Method: "TRACE", Path: "/echo"},
			}},
			expectedErr: `invalid tool definition "echo"`,
		},
		"unknown-invalidation-target": {
			defs: []domain.ToolDefinition{{
				Name: "echo", Category: "test", Description: "x", Invalidates: []string{"nope"},
			}},
			expectedErr: `invalidates unknown tool "nope"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := New(Options{DefaultTimeout: 30 * time.Second, DefaultCacheTTL: 5 * time.Minute}, tt.defs, tt.aliases)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, c)
			}
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := newTestCatalog(t)

	tests := map[string]struct {
		name         string
		expectedName string
		expectedOK   bool
	}{
		"canonical":        {name: "list_records", expectedName: "list_records", expectedOK: true},
		"legacy-alias":     {name: "get_records", expectedName: "list_records", expectedOK: true},
		"prefixed-alias":   {name: "airtable_get_record", expectedName: "get_record", expectedOK: true},
		"schema-alias":     {name: "describe_base", expectedName: "get_base_schema", expectedOK: true},
		"unknown":          {name: "drop_table", expectedOK: false},
		"case-sensitive":   {name: "LIST_RECORDS", expectedOK: false},
		"empty-tool-name":  {name: "", expectedOK: false},
		"batch-alias-name": {name: "batch_create_records", expectedName: "create_records", expectedOK: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			def, ok := c.Lookup(tt.name)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedName, def.Name)
		})
	}
}

func TestCatalog_List(t *testing.T) {
	c := newTestCatalog(t)

	defs := c.List()
	require.Len(t, defs, 10)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Name, defs[i].Name)
	}
	for _, def := range defs {
		assert.Positive(t, def.Timeout, def.Name)
		if def.Cacheable {
			assert.Positive(t, def.CacheTTL, def.Name)
		}
		if def.RequiresAuth {
			assert.Equal(t, "records:write", def.RequiredPermission, def.Name)
			assert.False(t, def.Cacheable, def.Name)
		}
	}
}

func TestCatalog_ValidateArguments(t *testing.T) {
	c := newTestCatalog(t)
	const baseID = "appABCDEFGHIJKLMN"

	tests := map[string]struct {
		tool     string
		args     map[string]any
		expected []domain.ArgumentViolation
	}{
		"valid": {
			tool: "list_records",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "max_records": float64(10)},
		},
		"integral-float-accepted-as-int": {
			tool: "list_records",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "max_records": 10.0},
		},
		"missing-required": {
			tool: "get_record",
			args: map[string]any{"base_id": baseID, "table": "Tasks"},
			expected: []domain.ArgumentViolation{{
				Parameter: "record_id",
				Kind:      domain.ErrorKind_MissingRequiredParam,
				Message:   "missing required parameter 'record_id'",
			}},
		},
		"null-required-is-missing": {
			tool: "get_record",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "record_id": nil},
			expected: []domain.ArgumentViolation{{
				Parameter: "record_id",
				Kind:      domain.ErrorKind_MissingRequiredParam,
				Message:   "missing required parameter 'record_id'",
			}},
		},
		"pattern-mismatch": {
			tool: "get_base_schema",
			args: map[string]any{"base_id": "base1"},
			expected: []domain.ArgumentViolation{{
				Parameter: "base_id",
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   "parameter 'base_id' does not match pattern " + baseIDPattern,
			}},
		},
		"wrong-type": {
			tool: "list_tables",
			args: map[string]any{"base_id": baseID, "detailed": "yes"},
			expected: []domain.ArgumentViolation{{
				Parameter: "detailed",
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   "parameter 'detailed' must be of type bool, got string",
			}},
		},
		"fractional-int": {
			tool: "list_records",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "max_records": 1.5},
			expected: []domain.ArgumentViolation{{
				Parameter: "max_records",
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   "parameter 'max_records' must be of type int, got float64",
			}},
		},
		"out-of-range": {
			tool: "list_records",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "max_records": float64(5000)},
			expected: []domain.ArgumentViolation{{
				Parameter: "max_records",
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   "parameter 'max_records' must be <= 1000",
			}},
		},
		"enum-mismatch": {
			tool: "list_records",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "sort_direction": "up"},
			expected: []domain.ArgumentViolation{{
				Parameter: "sort_direction",
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   "parameter 'sort_direction' must be one of [asc desc]",
			}},
		},
		"array-too-long": {
			tool: "create_records",
			args: map[string]any{
				"base_id": baseID,
				"table":   "Tasks",
				"records": []any{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
			},
			expected: []domain.ArgumentViolation{{
				Parameter: "records",
				Kind:      domain.ErrorKind_InvalidArguments,
				Message:   "parameter 'records' length must be at most 10",
			}},
		},
		"unknown-parameters-sorted": {
			tool: "list_bases",
			args: map[string]any{"zeta": 1, "alpha": 2},
			expected: []domain.ArgumentViolation{
				{Parameter: "alpha", Kind: domain.ErrorKind_InvalidArguments, Message: "unknown parameter 'alpha'"},
				{Parameter: "zeta", Kind: domain.ErrorKind_InvalidArguments, Message: "unknown parameter 'zeta'"},
			},
		},
		"unknown-tool": {
			tool: "nope",
			args: map[string]any{},
			expected: []domain.ArgumentViolation{{
				Kind:    domain.ErrorKind_UnknownTool,
				Message: "tool 'nope' is not registered",
			}},
		},
		"alias-validates-like-target": {
			tool: "find_records",
			args: map[string]any{"base_id": baseID, "table": "Tasks", "search_term": "x", "fields": []any{"Name"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := c.ValidateArguments(tt.tool, tt.args)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	c := newTestCatalog(t)
	def, ok := c.Lookup("list_records")
	require.True(t, ok)

	args := map[string]any{"base_id": "appABCDEFGHIJKLMN", "table": "Tasks", "max_records": 5}
	got := ApplyDefaults(def, args)

	assert.Equal(t, 5, got["max_records"])
	assert.Equal(t, "asc", got["sort_direction"])
	_, hasView := got["view"]
	assert.False(t, hasView)
	_, mutated := args["sort_direction"]
	assert.False(t, mutated)
}

func TestInputSchemaMap(t *testing.T) {
	c := newTestCatalog(t)
	def, ok := c.Lookup("search_records")
	require.True(t, ok)

	schema, err := InputSchemaMap(def)
	require.NoError(t, err)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.ElementsMatch(t, []any{"base_id", "table", "search_term", "fields"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	maxRecords := props["max_records"].(map[string]any)
	assert.Equal(t, "integer", maxRecords["type"])
	assert.Equal(t, float64(1000), maxRecords["maximum"])
	fields := props["fields"].(map[string]any)
	assert.Equal(t, float64(20), fields["maxItems"])
	baseID := props["base_id"].(map[string]any)
	assert.Equal(t, baseIDPattern, baseID["pattern"])
}

func TestLoadExtension(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		content     string
		expectedErr bool
		validate    func(t *testing.T, ext Extension)
	}{
		"tools-and-aliases": {
			content: `
tools:
  - name: list_comments
    category: comments
    description: List comments of a record.
    timeout: 10s
    cacheable: true
    cache_ttl: 30s
    endpoint:
      method: GET
      path: /{base_id}/{table}/{record_id}/comments
    parameters:
      - name: record_id
        type: string
        required: true
        pattern: "^rec[a-zA-Z0-9]{14}$"
aliases:
  get_comments: list_comments
`,
			validate: func(t *testing.T, ext Extension) {
				require.Len(t, ext.Tools, 1)
				assert.Equal(t, "list_comments", ext.Tools[0].Name)
				assert.Equal(t, 10*time.Second, ext.Tools[0].Timeout)
				assert.Equal(t, 30*time.Second, ext.Tools[0].CacheTTL)
				assert.True(t, ext.Tools[0].Parameters[0].Required)
				require.NotNil(t, ext.Tools[0].Endpoint)
				assert.Equal(t, "/{base_id}/{table}/{record_id}/comments", ext.Tools[0].Endpoint.Path)
				assert.Equal(t, map[string]string{"get_comments": "list_comments"}, ext.Aliases)

				c, err := New(Options{DefaultTimeout: time.Second}, append(BuiltinDefinitions(), ext.Tools...), ext.Aliases)
				require.NoError(t, err)
				def, ok := c.Lookup("get_comments")
				require.True(t, ok)
				assert.Equal(t, "list_comments", def.Name)
			},
		},
		"unknown-field": {
			content:     "tools:\n  - name: x\n    color: red\n",
			expectedErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			ext, err := LoadExtension(path)
			if tt.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, ext)
		})
	}

	t.Run("missing-file", func(t *testing.T) {
		_, err := LoadExtension(filepath.Join(dir, "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadExtensions(t *testing.T) {
	write := func(t *testing.T, path, content string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	toolYAML := func(name string) string {
		return "tools:\n  - name: " + name + "\n    category: extra\n    description: Extra tool.\n    endpoint:\n      method: GET\n      path: /" + name + "\n"
	}

	tests := map[string]struct {
		files       map[string]string
		pattern     string
		expectedErr bool
		tools       []string
		aliases     map[string]string
	}{
		"nested-glob": {
			files: map[string]string{
				"b/second.yaml":      toolYAML("tool_b") + "aliases:\n  old_b: tool_b\n",
				"a/deep/first.yaml":  toolYAML("tool_a"),
				"a/deep/ignored.txt": "not yaml",
			},
			pattern: "**/*.yaml",
			tools:   []string{"tool_a", "tool_b"},
			aliases: map[string]string{"old_b": "tool_b"},
		},
		"conflicting-alias": {
			files: map[string]string{
				"one.yaml": "aliases:\n  old: tool_a\n",
				"two.yaml": "aliases:\n  old: tool_b\n",
			},
			pattern:     "*.yaml",
			expectedErr: true,
		},
		"no-match": {
			pattern:     "*.yaml",
			expectedErr: true,
		},
		"bad-pattern": {
			pattern:     "[",
			expectedErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for rel, content := range tt.files {
				write(t, filepath.Join(dir, rel), content)
			}

			ext, err := LoadExtensions(filepath.Join(dir, tt.pattern))
			if tt.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			names := []string{}
			for _, def := range ext.Tools {
				names = append(names, def.Name)
			}
			assert.Equal(t, tt.tools, names)
			assert.Equal(t, tt.aliases, ext.Aliases)
		})
	}
}
