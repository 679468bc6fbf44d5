package main

import "fmt"

// FormatMegabytes formats a byte count as megabytes with two decimals.
func FormatMegabytes(bytes int64) string {
	const MB = 1024 * 1024
	return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
}
