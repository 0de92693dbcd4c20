package services

import "strings"

// ParseKeywords splits the UI's comma-separated keyword field into a clean
// array: split on commas, trim whitespace, drop empties.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// JoinKeywords is the reverse mapping applied when an entry is loaded back
// into the edit form.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}
