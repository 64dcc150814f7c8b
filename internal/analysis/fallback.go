package analysis

import "math/rand"

// score returns a pseudo-random score in [min, max]. Fallback payloads use
// plausible mid-range values rather than zeros so degraded results still
// render sensibly.
func score(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
