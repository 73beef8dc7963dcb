package scan

import (
	"fmt"
	"strings"

	"github.com/fwojciec/pagemark"
)

// State is the position of a Filter relative to the main content region.
type State int

// Filter states. PastFooter is terminal.
const (
	BeforeMain State = iota
	InMain
	PastFooter
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case BeforeMain:
		return "before-main"
	case InMain:
		return "in-main"
	case PastFooter:
		return "past-footer"
	default:
		return "unknown"
	}
}

// ignored lists elements that never carry extractable content. Comments and
// doctype declarations are matched by their "!" prefix.
var ignored = map[string]bool{
	"head":     true,
	"meta":     true,
	"link":     true,
	"base":     true,
	"script":   true,
	"noscript": true,
	"style":    true,
	"template": true,
	"iframe":   true,
	"svg":      true,
	"path":     true,
	"video":    true,
	"audio":    true,
	"source":   true,
	"track":    true,
	"canvas":   true,
	"object":   true,
	"embed":    true,
	"table":    true,
	"thead":    true,
	"tbody":    true,
	"tfoot":    true,
	"tr":       true,
	"td":       true,
	"th":       true,
	"colgroup": true,
	"col":      true,
	"caption":  true,
	"br":       true,
}

// voidElements never have a closing tag, so an Opening event for them must
// not change the depth.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsIgnored reports whether the filter drops tags named name.
func IsIgnored(name string) bool {
	return ignored[name] || strings.HasPrefix(name, "!") || strings.HasPrefix(name, "?")
}

// Filter rebuilds nesting depth from a flat tag stream and keeps the tags
// of the main content region. The zero value is ready to use.
type Filter struct {
	state State
	depth int
	base  int

	title string
	tags  []pagemark.Tag

	// carry holds text that preceded an ignored tag. It belongs to the
	// next kept tag.
	carry string
	// spaced is set when a non-comment ignored tag followed the carried
	// text, so the next run starts a new word.
	spaced bool

	mains      int
	underflows int
}

// NewFilter returns a Filter in the BeforeMain state.
func NewFilter() *Filter {
	return &Filter{}
}

// Feed processes the next tag of the stream.
func (f *Filter) Feed(tag pagemark.Tag) {
	if f.state == PastFooter {
		return
	}
	if IsIgnored(tag.Name) {
		if tag.Door != pagemark.Closing && tag.Content != "" {
			f.carry = join(f.carry, tag.Content, f.spaced)
			f.spaced = false
		}
		if tag.Name != "!--" {
			f.spaced = true
		}
		return
	}

	if tag.Door == pagemark.Opening && voidElements[tag.Name] {
		tag.Door = pagemark.SelfClosing
	}

	stamp := f.depth
	switch tag.Door {
	case pagemark.Opening:
		f.depth++
	case pagemark.Closing:
		if f.depth == 0 {
			f.underflows++
		} else {
			f.depth--
		}
		// Siblings after main keep their relative nesting.
		f.base = min(f.base, f.depth)
		stamp = f.depth
	}

	content := join(f.carry, tag.Content, f.spaced)
	f.carry = ""
	f.spaced = false

	switch {
	case tag.Name == "main" && tag.Door == pagemark.Opening:
		f.state = InMain
		f.base = f.depth
		f.tags = nil
		f.mains++
		return
	case tag.Name == "footer" && tag.Door == pagemark.Opening && f.state == InMain:
		f.state = PastFooter
		return
	case tag.Name == "title":
		if f.title == "" && tag.Door == pagemark.Closing {
			f.title = strings.TrimSpace(content)
		}
		return
	}

	if f.state != InMain {
		return
	}
	tag.Content = content
	tag.Depth = stamp - f.base
	f.tags = append(f.tags, tag)
}

// State returns the current filter state.
func (f *Filter) State() State {
	return f.state
}

// Title returns the first title captured outside ignored regions.
func (f *Filter) Title() string {
	return f.title
}

// Tags returns the filtered, depth-annotated tags.
func (f *Filter) Tags() []pagemark.Tag {
	return f.tags
}

// Diagnostics describes structural anomalies seen so far.
func (f *Filter) Diagnostics() []string {
	var out []string
	if f.underflows > 0 {
		out = append(out, fmt.Sprintf("ignored %d closing tags without a matching opening tag", f.underflows))
	}
	switch {
	case f.mains == 0:
		out = append(out, "no <main> region found")
	case f.mains > 1:
		out = append(out, fmt.Sprintf("found %d <main> regions, kept the last", f.mains))
	}
	return out
}

// join concatenates two normalized text runs. With space set the runs are
// separate words; otherwise they meet as written.
func join(a, b string, space bool) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	sep := ""
	if space {
		sep = " "
	}
	s, _ := pagemark.CollapseWhitespace(a + sep + b)
	return s
}
