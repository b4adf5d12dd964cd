package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/invopop/jsonschema"
)

var jsonSchemaTypes = map[domain.ParamType]string{
	domain.ParamType_String: "string",
	domain.ParamType_Int:    "integer",
	domain.ParamType_Number: "number",
	domain.ParamType_Bool:   "boolean",
	domain.ParamType_Array:  "array",
	domain.ParamType_Object: "object",
}

// InputSchema returns the JSON Schema describing the arguments of def.
func InputSchema(def domain.ToolDefinition) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	required := []string{}

	for _, p := range def.Parameters {
		ps := &jsonschema.Schema{
			Type:        jsonSchemaTypes[p.Type],
			Description: p.Description,
			Default:     p.Default,
			Enum:        p.Enum,
			Pattern:     p.Pattern,
		}
		if p.MinValue != nil {
			ps.Minimum = formatNumber(*p.MinValue)
		}
		if p.MaxValue != nil {
			ps.Maximum = formatNumber(*p.MaxValue)
		}
		switch p.Type {
		case domain.ParamType_Array:
			ps.MinItems = toUint(p.MinLength)
			ps.MaxItems = toUint(p.MaxLength)
		case domain.ParamType_String:
			ps.MinLength = toUint(p.MinLength)
			ps.MaxLength = toUint(p.MaxLength)
		}
		props.Set(p.Name, ps)
		if p.Required {
			required = append(required, p.Name)
		}
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// InputSchemaMap returns InputSchema(def) decoded into a generic map.
func InputSchemaMap(def domain.ToolDefinition) (map[string]any, error) {
	raw, err := json.Marshal(InputSchema(def))
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func formatNumber(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func toUint(n *int) *uint64 {
	if n == nil || *n < 0 {
		return nil
	}
	v := uint64(*n)
	return &v
}
