// README: Pulls a JSON object or array out of free-form model output.
package extract

import (
	"encoding/json"
	"strings"
)

// Shape is the top-level JSON kind a caller expects.
type Shape int

const (
	Object Shape = iota
	Array
)

func (s Shape) delims() (opening, closing byte) {
	if s == Array {
		return '[', ']'
	}
	return '{', '}'
}

func (s Shape) String() string {
	if s == Array {
		return "array"
	}
	return "object"
}

// Strategy locates the candidate JSON text inside raw. It reports false when
// no candidate exists; it never validates the candidate.
type Strategy func(raw string, shape Shape) (string, bool)

// Greedy takes everything from the first opening delimiter to the last closing one.
// Two independent blobs in one reply therefore come back as one invalid candidate.
func Greedy(raw string, shape Shape) (string, bool) {
	opening, closing := shape.delims()
	start := strings.IndexByte(raw, opening)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, closing)
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// Balanced returns the first delimiter-balanced blob of the requested shape,
// skipping delimiters inside JSON strings. Unbalanced starts are skipped.
func Balanced(raw string, shape Shape) (string, bool) {
	open, _ := shape.delims()
	for start := strings.IndexByte(raw, open); start >= 0; {
		if end, ok := matchClose(raw, start); ok {
			return raw[start : end+1], true
		}
		next := strings.IndexByte(raw[start+1:], open)
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchClose walks from raw[start] (an opening delimiter) to its matching closer.
func matchClose(raw string, start int) (int, bool) {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(raw); i++ {
		ch := raw[i]
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
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// StrategyByName maps a config value to a Strategy. Unknown names select Greedy.
func StrategyByName(name string) Strategy {
	if strings.EqualFold(strings.TrimSpace(name), "balanced") {
		return Balanced
	}
	return Greedy
}

// Extractor applies a Strategy and validates the result as JSON.
type Extractor struct {
	Strategy Strategy
}

// New returns an Extractor; a nil strategy means Greedy.
func New(s Strategy) *Extractor {
	if s == nil {
		s = Greedy
	}
	return &Extractor{Strategy: s}
}

// JSON returns the located JSON text, or nil when nothing valid was found.
func (e *Extractor) JSON(raw string, shape Shape) json.RawMessage {
	strategy := Greedy
	if e != nil && e.Strategy != nil {
		strategy = e.Strategy
	}
	candidate, ok := strategy(raw, shape)
	if !ok || !json.Valid([]byte(candidate)) {
		return nil
	}
	return json.RawMessage(candidate)
}

// Into decodes the located JSON into v and reports whether that succeeded.
func (e *Extractor) Into(raw string, shape Shape, v any) bool {
	doc := e.JSON(raw, shape)
	if doc == nil {
		return false
	}
	return json.Unmarshal(doc, v) == nil
}

var defaultExtractor = New(Greedy)

// JSON extracts with the Greedy strategy.
func JSON(raw string, shape Shape) json.RawMessage {
	return defaultExtractor.JSON(raw, shape)
}

// Into decodes with the Greedy strategy.
func Into(raw string, shape Shape, v any) bool {
	return defaultExtractor.Into(raw, shape, v)
}
