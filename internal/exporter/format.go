package exporter

import "fmt"

// formatFloat formats a price with exactly 2 decimal places so 13.4
// appears as 13.40 in the report.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatFloatPtr renders a nullable price; absence stays blank, never "0".
func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatIntPtr renders a nullable integer column.
func formatIntPtr(i *int) string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%d", *i)
}
