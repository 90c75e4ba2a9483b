package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded payload. A non-nil error rejects it.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON value in a model reply into T. Replies
// carry either a timeline document (an object with title, rows and items) or
// a breakdown, which models return as {"tasks": [...]} or as a bare task
// array; both shapes are located here. Markdown fences, prose around the
// value, comments, trailing commas and numbers like ".5" are tolerated.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstValue(unfence(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}

	var out T
	if err := json.Unmarshal(sanitize(block), &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(out); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// unfence drops markdown fence lines, keeping what they enclose.
func unfence(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanner tracks whether a byte position lies inside a JSON string.
type scanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is part of a string literal,
// quotes included.
func (sc *scanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return true
	case sc.inString && c == '\\':
		sc.escaped = true
		return true
	case c == '"':
		sc.inString = !sc.inString
		return true
	}
	return sc.inString
}

// firstValue returns the first balanced object or array in s, or "".
func firstValue(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	open, closing := s[start], byte('}')
	if open == '[' {
		closing = ']'
	}

	var sc scanner
	depth := 0
	for i := start; i < len(s); i++ {
		if sc.step(s[i]) {
			continue
		}
		switch s[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitize rewrites the common ways models bend JSON, leaving string
// literals alone: it removes // and /* */ comments, drops a comma before a
// closing bracket and writes ".5" as "0.5".
func sanitize(s string) []byte {
	out := make([]byte, 0, len(s)+8)
	var sc scanner

	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) {
			out = append(out, c)
			continue
		}

		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return out
			}
			i += end + 3
			continue
		case c == '}' || c == ']':
			out = dropTrailingComma(out)
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastNonSpace(out)):
			out = append(out, '0')
		}
		out = append(out, c)
	}
	return out
}

func dropTrailingComma(b []byte) []byte {
	i := len(b) - 1
	for i >= 0 && isSpace(b[i]) {
		i--
	}
	if i >= 0 && b[i] == ',' {
		return append(b[:i], b[i+1:]...)
	}
	return b
}

func lastNonSpace(b []byte) byte {
	for i := len(b) - 1; i >= 0; i-- {
		if !isSpace(b[i]) {
			return b[i]
		}
	}
	return 0
}

// startsNumber reports whether a value may begin after c.
func startsNumber(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isSpace(c byte) bool { return c == ' ' || c == '\n' || c == '\r' || c == '\t' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
