package product

import (
	"regexp"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`\$\s*([0-9]{1,3}(?:,[0-9]{3})*|[0-9]+)(?:\.([0-9]{2}))?`)

// ParsePrice extracts the first dollar amount from text: "$1,249.99" parses
// to 1249.99, "$50" to 50.00. Only the first match counts: in listing
// markup the current price usually precedes the strikethrough price, a
// heuristic this deliberately encodes. Returns false when text holds no
// price.
func ParsePrice(text string) (float64, bool) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	dollars := strings.ReplaceAll(m[1], ",", "")
	cents := m[2]
	if cents == "" {
		cents = "00"
	}
	value, err := strconv.ParseFloat(dollars+"."+cents, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
