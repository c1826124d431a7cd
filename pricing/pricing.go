// Package pricing converts video length into credits.
package pricing

const secondsPerCredit = 60

// CreditCost charges one credit per started minute, never less than one.
// Unknown or zero durations bill the minimum.
func CreditCost(durationSeconds int) int {
	if durationSeconds <= 0 {
		return 1
	}
	cost := durationSeconds / secondsPerCredit
	if durationSeconds%secondsPerCredit != 0 {
		cost++
	}
	return cost
}
