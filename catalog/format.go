package catalog

import (
	"fmt"
	"strings"

	"filedex/models"
)

// Placeholders shown instead of missing or malformed values
const (
	UnknownSize = "Unknown size"
	UnknownDate = "Unknown date"
	InvalidDate = "Invalid date"
)

// DefaultDateLayout renders dates as day/month/year
const DefaultDateLayout = "02/01/2006 15:04:05"

var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatBytes renders a size with two decimals in base 1024, capped at GB
func FormatBytes(size models.Size) string {
	if !size.Known || size.Bytes < 0 {
		return UnknownSize
	}
	if size.Bytes == 0 {
		return "0 B"
	}

	b := float64(size.Bytes)
	i := 0
	for b >= 1024 && i < len(byteUnits)-1 {
		b /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", b, byteUnits[i])
}

// FormatDate renders an ISO-8601 timestamp in UTC with layout
func FormatDate(ts models.Timestamp, layout string) string {
	if strings.TrimSpace(string(ts)) == "" {
		return UnknownDate
	}

	t, err := ts.Time()
	if err != nil {
		return InvalidDate
	}
	return t.UTC().Format(layout)
}
