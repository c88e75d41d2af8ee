// Package normalize holds the pure field normalizers shared by every
// pipeline entry point. All three are total: bad input maps to a fallback
// value, never to an error.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// currencyRunes are dropped from amount strings wherever they appear.
const currencyRunes = "$€£¥₹"

// Amount converts a raw amount cell to a float64. Currency symbols, commas
// and whitespace are stripped anywhere in the string, and a fully
// parenthesized value is treated as negative: "(42.00)" -> -42. Absent,
// unparseable and non-finite values all come back as 0.
func Amount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' || strings.ContainsRune(currencyRunes, r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0
	}

	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
