package pagedata

import (
	"fmt"
	"strings"
)

// MaxDisplayLen is the number of characters of a matched value shown in reports.
const MaxDisplayLen = 100

// FormatSearchResult renders r as a human-readable report grouped by root.
func FormatSearchResult(query string, r *SearchResult) string {
	if r == nil || r.Total() == 0 {
		return fmt.Sprintf("No matches found for %q\n", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for _, root := range r.Roots() {
		fmt.Fprintf(&b, "  Root object: %s\n", root.Name)
		for _, m := range root.Matches {
			fmt.Fprintf(&b, "    Match at:\n\t%s\n\t%q\n", m.Path, truncate(m.Value, MaxDisplayLen))
		}
	}
	fmt.Fprintf(&b, "Total matches found: %d\n", r.Total())
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
