package heatmap

// Level classifies a day's token count against the period's peak day,
// returning an intensity from 0 (no usage) to 4 (at least 75% of peak).
// Breakpoints are inclusive: exactly 0.75 of peak is level 4.
func Level(count, max int) int {
	if count <= 0 || max <= 0 {
		return 0
	}

	ratio := float64(count) / float64(max)
	switch {
	case ratio >= 0.75:
		return 4
	case ratio >= 0.50:
		return 3
	case ratio >= 0.25:
		return 2
	default:
		return 1
	}
}
