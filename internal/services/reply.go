package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decodeReply decodes the span from the first '{' to the last '}' of a model
// reply into v. Surrounding prose and code fences are ignored.
func decodeReply(text string, v any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("%w: no JSON object found", ErrBackendParse)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendParse, err)
	}

	return nil
}

// coerceScore turns a JSON score value into an integer in [0,5]. Values that
// are not numbers or numeric strings count as 0.
func coerceScore(value any) int {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) {
		return 0
	}

	return clampScore(int(math.Round(f)))
}

func clampScore(v int) int {
	switch {
	case v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	default:
		return v
	}
}

func coerceName(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
