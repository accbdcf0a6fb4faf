package constants

import "strings"

// ImportanceKeywords marks a section title (or a header candidate line) as
// important when any of them appears, case-insensitively.
var ImportanceKeywords = []string{"important", "notice", "warning", "attention", "note"}

// ContainsImportanceKeyword reports whether s contains any importance keyword.
func ContainsImportanceKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range ImportanceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
