package pagemark

import "strings"

// Door tells which direction of a depth-first walk a tag event represents.
type Door int

// Door values.
const (
	Opening Door = iota
	Closing
	SelfClosing
)

// String returns the door name.
func (d Door) String() string {
	switch d {
	case Opening:
		return "opening"
	case Closing:
		return "closing"
	case SelfClosing:
		return "self-closing"
	default:
		return "unknown"
	}
}

// Tag is a single open, close or self-close event extracted from markup.
type Tag struct {
	// Name is the lower-case element name.
	Name string

	Door Door

	// Attributes holds the raw key[=value] tokens of Opening and
	// SelfClosing tags, in source order and unparsed.
	Attributes []string

	// Content is the normalized text that directly preceded the tag in the
	// source. Empty means there was none.
	Content string

	// Depth is assigned by the content filter and is meaningless before it.
	Depth int
}

// HasContent reports whether text preceded the tag.
func (t Tag) HasContent() bool {
	return t.Content != ""
}

// Attr returns the value of the first attribute named key. Surrounding
// single or double quotes are stripped from the value. An attribute written
// without a value reports ("", true).
func (t Tag) Attr(key string) (string, bool) {
	for _, raw := range t.Attributes {
		k, v, hasValue := strings.Cut(raw, "=")
		if !strings.EqualFold(k, key) {
			continue
		}
		if !hasValue {
			return "", true
		}
		return unquote(v), true
	}
	return "", false
}

func unquote(v string) string {
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' || first == '\'') && first == last {
			return v[1 : len(v)-1]
		}
	}
	return strings.Trim(v, `"'`)
}
