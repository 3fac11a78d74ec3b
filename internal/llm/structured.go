package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ErrSchemaMismatch marks output that parsed as JSON but failed its
// SchemaValidator. It is always reported together with ErrInvalidOutput.
var ErrSchemaMismatch = errors.New("output does not match expected schema")

// ExtractJSON extracts a JSON object of type T from raw LLM text output.
// It handles markdown code fences, leading/trailing text, and nested braces.
// If validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	jsonStr := CleanJSON(raw)
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: %w: %v", ErrInvalidOutput, ErrSchemaMismatch, err)
		}
	}

	return result, nil
}

// CleanJSON returns the JSON object embedded in raw model output, with code
// fences, surrounding prose, comments and leading-dot decimals removed.
// Returns "" when no balanced object is present.
func CleanJSON(raw string) string {
	jsonStr := extractJSONBlock(stripCodeFences(raw))
	if jsonStr == "" {
		// Single-line fences such as ```json{...}``` leave an empty body.
		jsonStr = extractJSONBlock(raw)
	}
	if jsonStr == "" {
		return ""
	}
	return repairJSON(jsonStr)
}

// stripCodeFences returns the body of the first markdown code fence
// (```json ... ``` or ``` ... ```). Text outside that fence is dropped.
// Input without a fence is returned unchanged.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var body []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				return strings.Join(body, "\n")
			}
			inFence = true
			continue
		}
		if inFence {
			body = append(body, line)
		}
	}
	if !inFence {
		return s
	}
	return strings.Join(body, "\n")
}

// stringState tracks whether a byte scan is inside a JSON string literal.
type stringState struct {
	in      bool
	escaped bool
}

// step consumes c and reports whether it belongs to a string literal,
// quotes included.
func (st *stringState) step(c byte) bool {
	switch {
	case st.escaped:
		st.escaped = false
		return true
	case st.in && c == '\\':
		st.escaped = true
		return true
	case c == '"':
		st.in = !st.in
		return true
	}
	return st.in
}

// extractJSONBlock returns the first balanced { ... } block in s.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var st stringState
	depth := 0
	for i := start; i < len(s); i++ {
		if st.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON drops // and /* */ comments and rewrites ".5" or "-.5" as
// "0.5" or "-0.5". String literals pass through untouched.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var st stringState
	var prev byte // last non-space byte written
	write := func(c byte) {
		b.WriteByte(c)
		if !isSpace(c) {
			prev = c
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.step(c) {
			write(c)
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				// Keep the newline that ends the comment.
				if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
					i += end - 1
				} else {
					i = len(s)
				}
				continue
			case '*':
				if end := strings.Index(s[i+2:], "*/"); end >= 0 {
					i += end + 3
				} else {
					i = len(s)
				}
				continue
			}
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && isNumericBoundary(prev) {
			write('0')
		}
		write(c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func isNumericBoundary(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
