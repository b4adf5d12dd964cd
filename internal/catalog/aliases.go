package catalog

// legacyAliases maps tool names published by earlier releases to their current name.
var legacyAliases = map[string]string{
	"airtable_list_bases":    "list_bases",
	"airtable_list_records":  "list_records",
	"airtable_get_record":    "get_record",
	"airtable_create_record": "create_record",
	"airtable_update_record": "update_record",
	"airtable_delete_record": "delete_record",
	"get_records":            "list_records",
	"find_records":           "search_records",
	"get_schema":             "get_base_schema",
	"describe_base":          "get_base_schema",
	"batch_create_records":   "create_records",
}

// resolveAlias returns the canonical name for name.
func resolveAlias(aliases map[string]string, name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}
