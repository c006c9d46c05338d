package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerText renders an answer as plain text. Multi-valued answers are
// joined by sep; an absent answer is the empty string.
func AnswerText(a Answer, sep string) string {
	switch v := a.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, sep)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = AnswerText(item, sep)
		}
		return strings.Join(parts, sep)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// AnswerNumber reports the answer as a number, if it is one.
func AnswerNumber(a Answer) (float64, bool) {
	switch v := a.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
