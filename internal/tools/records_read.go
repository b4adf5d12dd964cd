package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// ListRecords lists the records of a table.
type ListRecords struct {
	client       domain.BackendClient
	timeProvider domain.CurrentTimeProvider
}

// NewListRecords creates a new ListRecords tool.
func NewListRecords(client domain.BackendClient, timeProvider domain.CurrentTimeProvider) ListRecords {
	return ListRecords{client: client, timeProvider: timeProvider}
}

// Name returns the tool name.
func (ListRecords) Name() string { return "list_records" }

// Execute executes ListRecords.
func (t ListRecords) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID          string   `json:"base_id"`
		Table           string   `json:"table"`
		View            string   `json:"view"`
		FilterByFormula string   `json:"filter_by_formula"`
		MaxRecords      int      `json:"max_records"`
		PageSize        int      `json:"page_size"`
		Offset          string   `json:"offset"`
		Fields          []string `json:"fields"`
		SortField       string   `json:"sort_field"`
		SortDirection   string   `json:"sort_direction"`
		ModifiedAfter   string   `json:"modified_after"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}

	formula := params.FilterByFormula
	if params.ModifiedAfter != "" {
		after, ok := domain.ParseDateArgument(params.ModifiedAfter, t.timeProvider.Now(), time.UTC)
		if !ok {
			return nil, domain.NewValidationErr(fmt.Sprintf("modified_after: cannot interpret %q as a date", params.ModifiedAfter))
		}
		formula = andFormulas(formula, fmt.Sprintf(
			"IS_AFTER(LAST_MODIFIED_TIME(), DATETIME_PARSE(%s))",
			quoteFormula(after.UTC().Format(time.RFC3339)),
		))
	}

	query := recordsQuery{
		view:       params.View,
		formula:    formula,
		maxRecords: params.MaxRecords,
		pageSize:   params.PageSize,
		offset:     params.Offset,
		fields:     params.Fields,
		sortField:  params.SortField,
		sortDir:    params.SortDirection,
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodGet,
		Path:   backendPath(params.BaseID, params.Table),
		Query:  query.values(),
	})
}

// GetRecord fetches one record by id.
type GetRecord struct {
	client domain.BackendClient
}

// NewGetRecord creates a new GetRecord tool.
func NewGetRecord(client domain.BackendClient) GetRecord {
	return GetRecord{client: client}
}

// Name returns the tool name.
func (GetRecord) Name() string { return "get_record" }

// Execute executes GetRecord.
func (t GetRecord) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID   string `json:"base_id"`
		Table    string `json:"table"`
		RecordID string `json:"record_id"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodGet,
		Path:   backendPath(params.BaseID, params.Table, params.RecordID),
	})
}

// SearchRecords runs a case-insensitive substring search over a set of fields.
type SearchRecords struct {
	client domain.BackendClient
}

// NewSearchRecords creates a new SearchRecords tool.
func NewSearchRecords(client domain.BackendClient) SearchRecords {
	return SearchRecords{client: client}
}

// Name returns the tool name.
func (SearchRecords) Name() string { return "search_records" }

// Execute executes SearchRecords.
func (t SearchRecords) Execute(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	params := struct {
		BaseID     string   `json:"base_id"`
		Table      string   `json:"table"`
		SearchTerm string   `json:"search_term"`
		Fields     []string `json:"fields"`
		MaxRecords int      `json:"max_records"`
	}{}
	if err := decodeArguments(call, &params); err != nil {
		return nil, err
	}
	if len(params.Fields) == 0 {
		return nil, domain.NewValidationErr("fields: at least one field is required")
	}

	query := recordsQuery{
		formula:    searchFormula(params.SearchTerm, params.Fields),
		maxRecords: params.MaxRecords,
	}
	return t.client.Do(ctx, domain.BackendRequest{
		Method: http.MethodGet,
		Path:   backendPath(params.BaseID, params.Table),
		Query:  query.values(),
	})
}

func searchFormula(term string, fields []string) string {
	needle := quoteFormula(strings.ToLower(term))
	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = fmt.Sprintf("SEARCH(%s, LOWER(%s))", needle, fieldRef(f))
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "OR(" + strings.Join(clauses, ", ") + ")"
}

type recordsQuery struct {
	view       string
	formula    string
	maxRecords int
	pageSize   int
	offset     string
	fields     []string
	sortField  string
	sortDir    string
}

func (q recordsQuery) values() map[string][]string {
	v := map[string][]string{}
	if q.view != "" {
		v["view"] = []string{q.view}
	}
	if q.formula != "" {
		v["filterByFormula"] = []string{q.formula}
	}
	if q.maxRecords > 0 {
		v["maxRecords"] = []string{strconv.Itoa(q.maxRecords)}
	}
	if q.pageSize > 0 {
		v["pageSize"] = []string{strconv.Itoa(q.pageSize)}
	}
	if q.offset != "" {
		v["offset"] = []string{q.offset}
	}
	if len(q.fields) > 0 {
		v["fields[]"] = q.fields
	}
	if q.sortField != "" {
		v["sort[0][field]"] = []string{q.sortField}
		dir := q.sortDir
		if dir == "" {
			dir = "asc"
		}
		v["sort[0][direction]"] = []string{dir}
	}
	if len(v) == 0 {
		return nil
	}
	return v
}
