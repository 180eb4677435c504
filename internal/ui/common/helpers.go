package common

import "strings"

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// OptionKey is the key that reveals option idx: 1-9, then 0 for the tenth.
func OptionKey(idx int) string {
	if idx == 9 {
		return "0"
	}
	return string(rune('1' + idx))
}

// OptionIndex is the inverse of OptionKey; ok is false for any other key.
func OptionIndex(k string) (idx int, ok bool) {
	if len(k) != 1 || !strings.Contains("1234567890", k) {
		return 0, false
	}
	if k == "0" {
		return 9, true
	}
	return int(k[0] - '1'), true
}
