package utils

import "strings"

// ParseInputString trims free-form user input and collapses inner runs of
// whitespace to single spaces.
func ParseInputString(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}
