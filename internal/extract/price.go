package extract

import (
	"regexp"
	"strconv"
)

// pricePattern matches "$150", "$100-$200", "$100 - $200", "$100 to $200".
var pricePattern = regexp.MustCompile(`\$\s*(\d{2,4})\s*(?:[-–—to]+\s*\$?\s*(\d{2,4}))?`)

// Session fees outside this band are treated as noise (rent, annual
// figures), not prices.
const (
	priceFloor = 20
	priceCeil  = 600
)

// PriceRange extracts a per-session price range from text. Every dollar
// amount found anywhere on the page is a candidate; the result is the
// min/max over candidates inside the plausible band. A lone "$150" and an
// unrelated "$90" elsewhere combine into (90, 150); this is an accepted
// heuristic, not a strict range parser.
func PriceRange(text string) (min, max int, ok bool) {
	if text == "" {
		return 0, 0, false
	}
	var prices []int
	for _, m := range pricePattern.FindAllStringSubmatch(text, -1) {
		if p, err := strconv.Atoi(m[1]); err == nil {
			prices = append(prices, p)
		}
		if m[2] != "" {
			if p, err := strconv.Atoi(m[2]); err == nil {
				prices = append(prices, p)
			}
		}
	}

	for _, p := range prices {
		if p < priceFloor || p > priceCeil {
			continue
		}
		if !ok {
			min, max, ok = p, p, true
			continue
		}
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}
