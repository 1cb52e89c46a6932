package ml

import (
	"fmt"
	"math"
)

// FormatMinutes renders a predicted duration as "HH hours and MM minutes",
// flooring like integer division so negative inputs stay consistent.
func FormatMinutes(total float64) string {
	hours := math.Floor(total / 60)
	minutes := math.Floor(total - hours*60)
	return fmt.Sprintf("%02d hours and %02d minutes", int(hours), int(minutes))
}
