package builder

import "strings"

// quoteIdentifier wraps an identifier in backticks, escaping any embedded
// backtick. Values never pass through here; only column and table names do.
func quoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// quoteAll quotes a list of identifiers and joins them with ", ".
func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdentifier(name)
	}
	return strings.Join(quoted, ", ")
}

// placeholders returns n comma-separated `?` markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
