package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// decodeArguments copies call arguments into target, rejecting keys target does not declare.
func decodeArguments(call domain.ToolCall, target any) error {
	raw, err := json.Marshal(call.Arguments)
	if err != nil {
		return domain.NewValidationErr(fmt.Sprintf("failed to encode arguments: %s", err))
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return domain.NewValidationErr(fmt.Sprintf("failed to parse arguments: %s", err))
	}
	return nil
}

// backendPath joins escaped path segments.
func backendPath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

// fieldRef renders a field reference for a backend formula.
func fieldRef(name string) string {
	return "{" + strings.ReplaceAll(name, "}", `\}`) + "}"
}

// quoteFormula renders s as a double-quoted formula string literal.
func quoteFormula(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// andFormulas combines non-empty formulas with AND.
func andFormulas(formulas ...string) string {
	parts := make([]string, 0, len(formulas))
	for _, f := range formulas {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return "AND(" + strings.Join(parts, ", ") + ")"
	}
}
