package exporter

import (
	"strings"
	"time"
)

// FilenameStem derives a safe filename stem from a collection name: lower
// case, every character outside [a-z0-9] replaced with a hyphen.
func FilenameStem(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('-')
		}
	}
	stem := sb.String()
	if strings.Trim(stem, "-") == "" {
		return "collection"
	}
	return stem
}

// DatedFilenameStem appends the date to a fixed prefix, for multi-collection
// and backup exports.
func DatedFilenameStem(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("2006-01-02")
}
