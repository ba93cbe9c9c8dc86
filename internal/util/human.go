package util

import "fmt"

// Human formats a byte count for the run summary.
func Human(n int64) string {
	const unit = 1 << 10

	switch {
	case n >= unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
