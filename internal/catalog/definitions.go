package catalog

import (
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

const (
	baseIDPattern   = `^app[a-zA-Z0-9]{14}$`
	recordIDPattern = `^rec[a-zA-Z0-9]{14}$`

	permissionRecordsWrite = "records:write"
)

var recordReadTools = []string{"list_records", "get_record", "search_records"}

func ptr[T any](v T) *T {
	return &v
}

func baseIDParam() domain.ParameterSpec {
	return domain.ParameterSpec{
		Name:        "base_id",
		Type:        domain.ParamType_String,
		Description: "Airtable base id (app...).",
		Required:    true,
		Pattern:     baseIDPattern,
	}
}

func tableParam() domain.ParameterSpec {
	return domain.ParameterSpec{
		Name:        "table",
		Type:        domain.ParamType_String,
		Description: "Table name or id.",
		Required:    true,
		MinLength:   ptr(1),
		MaxLength:   ptr(255),
	}
}

func recordIDParam() domain.ParameterSpec {
	return domain.ParameterSpec{
		Name:        "record_id",
		Type:        domain.ParamType_String,
		Description: "Record id (rec...).",
		Required:    true,
		Pattern:     recordIDPattern,
	}
}

func typecastParam() domain.ParameterSpec {
	return domain.ParameterSpec{
		Name:        "typecast",
		Type:        domain.ParamType_Bool,
		Description: "Let the backend convert string values to the field type.",
		Default:     false,
	}
}

// BuiltinDefinitions returns the tools shipped with the gateway.
func BuiltinDefinitions() []domain.ToolDefinition {
	writeLimit := &domain.RateLimitHint{RequestsPerSecond: 5, Burst: 5}

	return []domain.ToolDefinition{
		{
			Name:        "list_bases",
			Category:    "bases",
			Description: "List the bases the configured API key can access.",
			Parameters: []domain.ParameterSpec{
				{Name: "offset", Type: domain.ParamType_String, Description: "Pagination offset returned by a previous call."},
			},
			Timeout:   15 * time.Second,
			Cacheable: true,
			CacheTTL:  5 * time.Minute,
			Examples:  []domain.ToolExample{{Description: "All bases", Arguments: map[string]any{}}},
		},
		{
			Name:        "get_base_schema",
			Category:    "bases",
			Description: "Return the tables, fields and views of a base.",
			Parameters:  []domain.ParameterSpec{baseIDParam()},
			Timeout:     15 * time.Second,
			Cacheable:   true,
			CacheTTL:    10 * time.Minute,
			Examples:    []domain.ToolExample{{Description: "Schema of a base", Arguments: map[string]any{"base_id": "appABCDEFGHIJKLMN"}}},
		},
		{
			Name:        "list_tables",
			Category:    "tables",
			Description: "List the tables of a base.",
			Parameters: []domain.ParameterSpec{
				baseIDParam(),
				{Name: "detailed", Type: domain.ParamType_Bool, Description: "Include fields and views.", Default: false},
			},
			Timeout:   15 * time.Second,
			Cacheable: true,
			CacheTTL:  10 * time.Minute,
		},
		{
			Name:        "list_records",
			Category:    "records",
			Description: "List records of a table with optional view, formula filter, sorting and pagination.",
			Parameters: []domain.ParameterSpec{
				baseIDParam(),
				tableParam(),
				{Name: "view", Type: domain.ParamType_String, Description: "View name or id."},
				{Name: "filter_by_formula", Type: domain.ParamType_String, Description: "Airtable formula used to filter records.", MaxLength: ptr(4096)},
				{Name: "max_records", Type: domain.ParamType_Int, Description: "Maximum records to return.", Default: 100, MinValue: ptr(1.0), MaxValue: ptr(1000.0)},
				{Name: "page_size", Type: domain.ParamType_Int, Description: "Records per page.", MinValue: ptr(1.0), MaxValue: ptr(100.0)},
				{Name: "offset", Type: domain.ParamType_String, Description: "Pagination offset returned by a previous call."},
				{Name: "fields", Type: domain.ParamType_Array, Description: "Field names to return."},
				{Name: "sort_field", Type: domain.ParamType_String, Description: "Field to sort by."},
				{Name: "sort_direction", Type: domain.ParamType_String, Description: "Sort direction.", Enum: []any{"asc", "desc"}, Default: "asc"},
				{Name: "modified_after", Type: domain.ParamType_String, Description: "Only records modified after this date (any common date format)."},
			},
			Timeout:   30 * time.Second,
			Cacheable: true,
			CacheTTL:  time.Minute,
			Examples: []domain.ToolExample{{
				Description: "First 10 open tasks",
				Arguments:   map[string]any{"base_id": "appABCDEFGHIJKLMN", "table": "Tasks", "max_records": 10, "filter_by_formula": "{Status}='Open'"},
			}},
		},
		{
			Name:        "get_record",
			Category:    "records",
			Description: "Fetch a single record by id.",
			Parameters:  []domain.ParameterSpec{baseIDParam(), tableParam(), recordIDParam()},
			Timeout:     15 * time.Second,
			Cacheable:   true,
			CacheTTL:    time.Minute,
		},
		{
			Name:        "search_records",
			Category:    "records",
			Description: "Case-insensitive text search over the given fields of a table.",
			Parameters: []domain.ParameterSpec{
				baseIDParam(),
				tableParam(),
				{Name: "search_term", Type: domain.ParamType_String, Description: "Text to search for.", Required: true, MinLength: ptr(1), MaxLength: ptr(256)},
				{Name: "fields", Type: domain.ParamType_Array, Description: "Field names searched.", Required: true, MinLength: ptr(1), MaxLength: ptr(20)},
				{Name: "max_records", Type: domain.ParamType_Int, Description: "Maximum records to return.", Default: 100, MinValue: ptr(1.0), MaxValue: ptr(1000.0)},
			},
			Timeout:   30 * time.Second,
			Cacheable: true,
			CacheTTL:  time.Minute,
		},
		{
			Name:        "create_record",
			Category:    "records",
			Description: "Create a record in a table.",
			Parameters: []domain.ParameterSpec{
				baseIDParam(),
				tableParam(),
				{Name: "fields", Type: domain.ParamType_Object, Description: "Field values keyed by field name.", Required: true},
				typecastParam(),
			},
			Timeout:            30 * time.Second,
			RateLimit:          writeLimit,
			RequiresAuth:       true,
			RequiredPermission: permissionRecordsWrite,
			Invalidates:        recordReadTools,
		},
		{
			Name:        "update_record",
			Category:    "records",
			Description: "Update the given fields of a record.",
			Parameters: []domain.ParameterSpec{
				baseIDParam(),
				tableParam(),
				recordIDParam(),
				{Name: "fields", Type: domain.ParamType_Object, Description: "Field values keyed by field name.", Required: true},
				typecastParam(),
			},
			Timeout:            30 * time.Second,
			RateLimit:          writeLimit,
			RequiresAuth:       true,
			RequiredPermission: permissionRecordsWrite,
			Invalidates:        recordReadTools,
		},
		{
			Name:               "delete_record",
			Category:           "records",
			Description:        "Delete a record.",
			Parameters:         []domain.ParameterSpec{baseIDParam(), tableParam(), recordIDParam()},
			Timeout:            30 * time.Second,
			RateLimit:          writeLimit,
			RequiresAuth:       true,
			RequiredPermission: permissionRecordsWrite,
			Invalidates:        recordReadTools,
		},
		{
			Name:        "create_records",
			Category:    "records",
			Description: "Create up to 10 records in one request.",
			Parameters: []domain.ParameterSpec{
				baseIDParam(),
				tableParam(),
				{Name: "records", Type: domain.ParamType_Array, Description: "List of field maps.", Required: true, MinLength: ptr(1), MaxLength: ptr(10)},
				typecastParam(),
			},
			Timeout:            45 * time.Second,
			RateLimit:          writeLimit,
			RequiresAuth:       true,
			RequiredPermission: permissionRecordsWrite,
			Invalidates:        recordReadTools,
		},
	}
}
