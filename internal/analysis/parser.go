package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Fields is the structured analysis extracted from one journal entry.
type Fields struct {
	Emotions    []string `json:"emotions"`
	RulesBroken []string `json:"rules_broken"`
	Biases      []string `json:"biases"`
	Advice      string   `json:"advice"`
}

// ErrParse marks model output that could not be interpreted as the
// expected object. It triggers the fallback extractor and is never
// surfaced to API callers.
var ErrParse = errors.New("model output is not a usable analysis object")

// Parse interprets raw model output as the four-field analysis shape.
// Models wrap JSON in prose and code fences often enough that the first
// balanced {...} in the text is what gets parsed. Missing keys default
// to empty values; unknown keys are ignored.
func Parse(raw string) (Fields, error) {
	body, ok := extractObject(stripFences(raw))
	if !ok {
		return Fields{}, fmt.Errorf("%w: no json object found", ErrParse)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return Fields{
		Emotions:    stringList(obj["emotions"]),
		RulesBroken: stringList(obj["rules_broken"]),
		Biases:      stringList(obj["biases"]),
		Advice:      coerceString(obj["advice"]),
	}, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Strip leading ```lang and trailing ```
	firstNL := strings.IndexByte(s, '\n')
	if firstNL == -1 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	s = s[firstNL+1:]

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractObject returns the substring from the first '{' to its
// matching '}', skipping braces inside JSON string literals.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// stringList keeps string elements and drops everything else. Dropping
// is stricter than coercing and keeps label lists clean.
func stringList(v any) []string {
	out := []string{}
	arr, ok := v.([]any)
	if !ok {
		return out
	}
	for _, el := range arr {
		if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
