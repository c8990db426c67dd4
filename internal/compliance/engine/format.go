package engine

import "fmt"

// Detail strings are rendered in German hour/minute units to match the
// audited reporting format. Rounding applies to display only; every
// comparison in the checkers is done in minutes.

// formatThresholdHours renders a configured threshold. Whole hours drop the
// decimal ("11 Stunden"), everything else keeps one ("7.5 Stunden").
func formatThresholdHours(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%d Stunden", minutes/60)
	}
	return fmt.Sprintf("%.1f Stunden", float64(minutes)/60)
}

// formatObservedHours renders an observed value with one decimal
// ("0.1 Stunden").
func formatObservedHours(minutes float64) string {
	return fmt.Sprintf("%.1f Stunden", minutes/60)
}
