package phenotype

import "math"

// Possible-het percentages snap to these when within percentAnchorSlack.
var percentAnchors = []int{33, 50, 66}

const percentAnchorSlack = 3

// NormalizePercent rounds a possible-het percentage for display: values above
// 95 read as 100, below 5 as 0, and values near a common fraction snap to it.
func NormalizePercent(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	switch {
	case p > 95:
		return 100
	case p < 5:
		return 0
	}
	for _, a := range percentAnchors {
		if math.Abs(p-float64(a)) <= percentAnchorSlack {
			return a
		}
	}
	return int(math.Round(p))
}
