// Package hierarchy interprets chart-of-accounts codes: "1001" is a top-level
// subject, "100101" and "1001.01" are its children.
package hierarchy

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Separator is the explicit level separator some sources use.
const Separator = "."

// TopLevelLength is the length of a top-level code in the 4-2-2 scheme.
const TopLevelLength = 4

// segmentLength is the length each level below the top adds.
const segmentLength = 2

// Normalize trims a code, folds full-width characters and drops the ".0"
// suffix spreadsheets attach to numeric cells ("1001.0" -> "1001").
func Normalize(code string) string {
	s := strings.TrimSpace(width.Narrow.String(code))
	i := strings.Index(s, Separator)
	if i <= 0 || i == len(s)-1 {
		return s
	}
	if allDigits(s[:i]) && strings.Trim(s[i+1:], "0") == "" {
		return s[:i]
	}
	return s
}

// Length returns the number of characters in code.
func Length(code string) int {
	return utf8.RuneCountInString(code)
}

// HasSeparator reports whether code spells its hierarchy with ".".
func HasSeparator(code string) bool {
	return strings.Contains(code, Separator)
}

// IsMultiLevel reports whether code is longer than a top-level code of topLen characters.
func IsMultiLevel(code string, topLen int) bool {
	return Length(code) > topLen
}

// Level infers the depth of code (1 = top-level). Empty codes have level 0.
func Level(code string) int {
	if code == "" {
		return 0
	}
	if HasSeparator(code) {
		return len(strings.Split(code, Separator))
	}
	n := Length(code)
	if n <= TopLevelLength {
		return 1
	}
	return 1 + (n-TopLevelLength+segmentLength-1)/segmentLength
}

// Parent returns the parent code of code, or "" for top-level codes.
// "150101" -> "1501", "1001.01.02" -> "1001.01"
func Parent(code string) string {
	if HasSeparator(code) {
		i := strings.LastIndex(code, Separator)
		return code[:i]
	}
	level := Level(code)
	if level <= 1 {
		return ""
	}
	return string([]rune(code)[:TopLevelLength+segmentLength*(level-2)])
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
