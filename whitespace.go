package pagemark

import (
	"strings"
	"unicode"
)

// CollapseWhitespace replaces every run of Unicode whitespace in s with a
// single ASCII space. It reports false when s is empty or contains nothing
// but whitespace. The result is not trimmed, so " a " stays " a ".
func CollapseWhitespace(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	visible := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		visible = true
		b.WriteRune(r)
	}
	if !visible {
		return "", false
	}
	return b.String(), true
}
