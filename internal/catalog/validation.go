package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"unicode/utf8"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

// checkValue validates a present, non-nil value against p. It returns an empty
// string when the value is acceptable.
func checkValue(p domain.ParameterSpec, re *regexp.Regexp, value any) string {
	switch p.Type {
	case domain.ParamType_String:
		s, ok := value.(string)
		if !ok {
			return typeMismatch(p, value)
		}
		if msg := checkLength(p, utf8.RuneCountInString(s)); msg != "" {
			return msg
		}
		if re != nil && !re.MatchString(s) {
			return fmt.Sprintf("parameter '%s' does not match pattern %s", p.Name, p.Pattern)
		}
	case domain.ParamType_Int:
		n, ok := toFloat(value)
		if !ok || n != math.Trunc(n) {
			return typeMismatch(p, value)
		}
		if msg := checkRange(p, n); msg != "" {
			return msg
		}
	case domain.ParamType_Number:
		n, ok := toFloat(value)
		if !ok {
			return typeMismatch(p, value)
		}
		if msg := checkRange(p, n); msg != "" {
			return msg
		}
	case domain.ParamType_Bool:
		if _, ok := value.(bool); !ok {
			return typeMismatch(p, value)
		}
	case domain.ParamType_Array:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return typeMismatch(p, value)
		}
		if msg := checkLength(p, rv.Len()); msg != "" {
			return msg
		}
	case domain.ParamType_Object:
		if _, ok := value.(map[string]any); !ok {
			return typeMismatch(p, value)
		}
	default:
		return fmt.Sprintf("parameter '%s' has unsupported type %s", p.Name, p.Type)
	}

	if len(p.Enum) > 0 && !inEnum(p.Enum, value) {
		return fmt.Sprintf("parameter '%s' must be one of %v", p.Name, p.Enum)
	}
	return ""
}

func typeMismatch(p domain.ParameterSpec, value any) string {
	return fmt.Sprintf("parameter '%s' must be of type %s, got %T", p.Name, p.Type, value)
}

func checkLength(p domain.ParameterSpec, n int) string {
	if p.MinLength != nil && n < *p.MinLength {
		return fmt.Sprintf("parameter '%s' length must be at least %d", p.Name, *p.MinLength)
	}
	if p.MaxLength != nil && n > *p.MaxLength {
		return fmt.Sprintf("parameter '%s' length must be at most %d", p.Name, *p.MaxLength)
	}
	return ""
}

func checkRange(p domain.ParameterSpec, n float64) string {
	if p.MinValue != nil && n < *p.MinValue {
		return fmt.Sprintf("parameter '%s' must be >= %v", p.Name, *p.MinValue)
	}
	if p.MaxValue != nil && n > *p.MaxValue {
		return fmt.Sprintf("parameter '%s' must be <= %v", p.Name, *p.MaxValue)
	}
	return ""
}

func inEnum(enum []any, value any) bool {
	vn, vIsNum := toFloat(value)
	for _, e := range enum {
		if en, ok := toFloat(e); ok && vIsNum {
			if en == vn {
				return true
			}
			continue
		}
		if reflect.DeepEqual(e, value) {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
