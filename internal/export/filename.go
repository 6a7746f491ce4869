package export

import (
	"regexp"
	"strings"
	"time"
)

// DefaultContext prefixes backup filenames.
const DefaultContext = "maintenance_backup"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename names an export "{context}_{YYYY-MM-DD}.csv".
func Filename(context string, now time.Time) string {
	context = strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(context), "_"), "_")
	if context == "" {
		context = DefaultContext
	}
	return context + "_" + now.Format(time.DateOnly) + ".csv"
}
