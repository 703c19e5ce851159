package utils

import "strings"

// NormalizeKey builds the case-insensitive dedup form of a title or author.
func NormalizeKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
