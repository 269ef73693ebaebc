package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Bool decodes JSON booleans plus the spellings models use instead
// ("yes", "No", "1", 0). Anything else leaves it unset rather than failing
// the whole document.
type Bool struct {
	Value bool
	Set   bool
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	*b = Bool{}
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		*b = Bool{Value: t, Set: true}
	case float64:
		if t == 0 || t == 1 {
			*b = Bool{Value: t == 1, Set: true}
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			*b = Bool{Value: true, Set: true}
		case "false", "no", "n", "0":
			*b = Bool{Value: false, Set: true}
		}
	}
	return nil
}

// Or returns the decoded value, or def when it was absent or unparseable.
func (b Bool) Or(def bool) bool {
	if !b.Set {
		return def
	}
	return b.Value
}

// StringList decodes an array of scalars or a single comma or semicolon
// separated string. Objects and nested arrays are skipped; it never fails.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil
	var v any
	if err := json.Unmarshal(bytes.TrimSpace(data), &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		*l = splitItems(t)
	case []any:
		out := make(StringList, 0, len(t))
		for _, item := range t {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		*l = out
	}
	return nil
}

func splitItems(s string) StringList {
	var out StringList
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return fmt.Sprintf("%g", t), true
	case bool:
		return fmt.Sprintf("%t", t), true
	}
	return "", false
}
