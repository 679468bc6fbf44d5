package wenji

import (
	"regexp"
	"time"
)

// DateLayout is the layout of the date embedded in article directory names.
const DateLayout = "2006-01-02"

// FallbackDate is used for directories whose name carries no parseable date.
// It predates every real article, so such directories sort first.
var FallbackDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ExtractDate returns the date embedded in a directory name.
// The first YYYY-MM-DD substring is parsed; when there is none, or it is not
// a valid calendar date, FallbackDate is returned.
func ExtractDate(name string) time.Time {
	match := datePattern.FindString(name)
	if match == "" {
		return FallbackDate
	}
	t, err := time.Parse(DateLayout, match)
	if err != nil {
		return FallbackDate
	}
	return t
}

// DateText returns the literal YYYY-MM-DD substring of a directory name, or
// an empty string. Unlike ExtractDate it does not validate the digits, so a
// name like "2024-13-45-x" displays "2024-13-45" while sorting as FallbackDate.
func DateText(name string) string {
	return datePattern.FindString(name)
}
