package achievements

// BaseStreakThreshold is the first streak length worth celebrating.
const BaseStreakThreshold = 5

// NextStreakThreshold returns the next streak milestone above the current streak length.
func NextStreakThreshold(current int) int {
	thresholds := []int{5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

// IsStreakMilestone reports whether a streak of n lands on a milestone.
func IsStreakMilestone(n int) bool {
	return n >= BaseStreakThreshold && n%5 == 0
}
