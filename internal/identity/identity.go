// Package identity derives the display identity shown on public
// boards and charts: initials and a stable avatar color. Contact
// fields never leave the store through here.
package identity

import "strings"

var palette = []string{
	"#ff007a", "#bafd6e", "#3c2e55", "#ff66b4",
	"#d3ff9d", "#5a4a7d", "#f95db2", "#89d160",
}

// Key normalizes a full name into the participant identity key used
// for the per-user square cap and the payout rollup.
func Key(fullName string) string {
	return strings.Join(strings.Fields(strings.ToLower(fullName)), " ")
}

// Initials returns up to two uppercase letters for avatar display.
// "Ada Lovelace" -> "AL", "ada" -> "AD", "" -> "??".
func Initials(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "??"
	}
	if len(parts) == 1 {
		word := []rune(parts[0])
		if len(word) == 1 {
			return strings.ToUpper(string(word[0]))
		}
		return strings.ToUpper(string(word[:2]))
	}
	first := []rune(parts[0])
	last := []rune(parts[len(parts)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}

// Color picks a palette entry deterministically from the name, so the
// same participant always renders with the same avatar color. Weights
// run per character, not per byte, so multi-byte names hash the same
// as their character sequence.
func Color(fullName string) string {
	value := 0
	for i, c := range []rune(strings.ToLower(fullName)) {
		value += (i + 1) * int(c)
	}
	return palette[value%len(palette)]
}
