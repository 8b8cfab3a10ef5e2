package exporter

import (
	"math"
	"strconv"
)

// FormatFloat formats a value with the given precision; NaN is empty.
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// FormatInt formats an int for CSV output
func FormatInt(i int) string {
	return strconv.Itoa(i)
}
