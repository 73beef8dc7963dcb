package html

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// impliedEnd lists elements whose end tag may be omitted.
var impliedEnd = map[atom.Atom]bool{
	atom.Html:     true,
	atom.Head:     true,
	atom.Body:     true,
	atom.P:        true,
	atom.Li:       true,
	atom.Dt:       true,
	atom.Dd:       true,
	atom.Option:   true,
	atom.Optgroup: true,
	atom.Thead:    true,
	atom.Tbody:    true,
	atom.Tfoot:    true,
	atom.Tr:       true,
	atom.Td:       true,
	atom.Th:       true,
	atom.Colgroup: true,
	atom.Rb:       true,
	atom.Rt:       true,
	atom.Rp:       true,
}

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// diagnose replays the token stream against a stack of open elements and
// describes mismatched markup: end tags with no open element, elements
// closed implicitly by an ancestor's end tag, and elements still open at
// the end of input.
func diagnose(r io.Reader) []string {
	var out []string
	var open []string

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				out = append(out, fmt.Sprintf("tokenizer: %v", err))
			}
			for i := len(open) - 1; i >= 0; i-- {
				if !impliedEnd[atom.Lookup([]byte(open[i]))] {
					out = append(out, fmt.Sprintf("unclosed <%s> at end of input", open[i]))
				}
			}
			return out

		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[atom.Lookup(name)] {
				open = append(open, string(name))
			}

		case html.EndTagToken:
			raw, _ := z.TagName()
			name := string(raw)
			if voidElements[atom.Lookup(raw)] {
				continue
			}
			i := len(open) - 1
			for i >= 0 && open[i] != name {
				i--
			}
			if i < 0 {
				out = append(out, fmt.Sprintf("stray end tag </%s>", name))
				continue
			}
			for j := len(open) - 1; j > i; j-- {
				if !impliedEnd[atom.Lookup([]byte(open[j]))] {
					out = append(out, fmt.Sprintf("unclosed <%s> closed by </%s>", open[j], name))
				}
			}
			open = open[:i]
		}
	}
}
