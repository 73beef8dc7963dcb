// Package markdown renders tag streams and DOM trees as Markdown with a
// single depth-first pass. Each element writes a prefix when it is entered
// and defers a suffix, keyed by depth, until its descendants are done.
package markdown

import "strings"

// AttrFunc looks up an attribute of the element being rendered.
type AttrFunc func(key string) (string, bool)

// rule describes how one element maps to Markdown.
type rule struct {
	prefix string
	suffix string

	// skip drops the element and its whole subtree.
	skip bool

	// build replaces prefix and suffix for elements that depend on their
	// attributes. ok is false when a required attribute is missing.
	build func(attr AttrFunc) (prefix, suffix string, ok bool)
}

var rules = newRules()

func newRules() map[string]rule {
	m := map[string]rule{
		"p":          {prefix: "\n\n", suffix: "\n\n"},
		"br":         {prefix: "\n"},
		"blockquote": {prefix: "\n\n> "},
		"li":         {prefix: "\n - "},
		"hr":         {prefix: "\n\n"},
		"em":         {prefix: "_", suffix: "_"},
		"i":          {prefix: "_", suffix: "_"},
		"strong":     {prefix: "**", suffix: "**"},
		"b":          {prefix: "**", suffix: "**"},
		"img":        {build: image},
		"a":          {build: anchor},

		"script":   {skip: true},
		"style":    {skip: true},
		"head":     {skip: true},
		"noscript": {skip: true},
		"template": {skip: true},
	}
	for level := 1; level <= 6; level++ {
		name := "h" + string(rune('0'+level))
		m[name] = rule{prefix: "\n\n" + strings.Repeat("#", level) + " "}
	}
	return m
}

func image(attr AttrFunc) (string, string, bool) {
	alt, ok := attr("alt")
	if !ok {
		return "", "", false
	}
	src, ok := attr("src")
	if !ok {
		return "", "", false
	}
	return "![" + alt + "](" + src + ")", "", true
}

func anchor(attr AttrFunc) (string, string, bool) {
	href, ok := attr("href")
	if !ok {
		return "", "", false
	}
	return "[", "](" + href + ")", true
}

// Decorate returns the Markdown written before and after the children of
// the element named name. Unknown elements, and images or anchors missing a
// required attribute, get neither. skip is true when the element and its
// subtree must not be rendered at all.
func Decorate(name string, attr AttrFunc) (prefix, suffix string, skip bool) {
	r, ok := rules[name]
	if !ok {
		return "", "", false
	}
	if r.skip {
		return "", "", true
	}
	if r.build != nil {
		p, s, ok := r.build(attr)
		if !ok {
			return "", "", false
		}
		return p, s, false
	}
	return r.prefix, r.suffix, false
}
