package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericRun     = regexp.MustCompile(`-?\d+(\.\d+)?`)
	// 1.200,50 style: dots group thousands, the comma marks decimals.
	europeanAmount = regexp.MustCompile(`\d{1,3}(\.\d{3})+,\d+`)
	thousandsComma = regexp.MustCompile(`(\d),(\d{3})\b`)
	decimalComma   = regexp.MustCompile(`(\d),(\d{1,2})\b`)
)

// normalizeSeparators rewrites grouping and decimal commas so numericRun
// sees a plain decimal: "1,200" -> "1200", "1,5" -> "1.5", "1.200,50" -> "1200.50".
func normalizeSeparators(s string) string {
	s = europeanAmount.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Replace(strings.ReplaceAll(m, ".", ""), ",", ".", 1)
	})
	for {
		next := thousandsComma.ReplaceAllString(s, "$1$2")
		if next == s {
			break
		}
		s = next
	}
	return decimalComma.ReplaceAllString(s, "$1.$2")
}

// Number decodes JSON numbers as well as the numeric strings models like to emit,
// such as "€25", "1,200", "12,50 €" or "20-30" (first figure wins). Strings without digits
// ("Free") decode to zero. Use *Number to tell an absent field from zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		m := numericRun.FindString(normalizeSeparators(s))
		if m == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return fmt.Errorf("number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Or returns the value, or def when n is nil.
func (n *Number) Or(def float64) float64 {
	if n == nil {
		return def
	}
	return float64(*n)
}
