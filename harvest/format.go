package harvest

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the hex xxhash64 digest of data.
func ComputeHash(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// TruncateTarget shortens a target for display, keeping the end which is
// more informative.
func TruncateTarget(target string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return target[:min(len(target), maxLen)]
	}
	if len(target) <= maxLen {
		return target
	}
	return "..." + target[len(target)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
