package config

import "strings"

// SplitList splits a comma-separated value, trimming entries and dropping
// blank ones.
func SplitList(value string) []string {
	var values []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
