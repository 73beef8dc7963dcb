// Package scan implements the streaming engine: a character-fed tag
// tokenizer and a content filter that rebuilds nesting depth from the flat
// tag stream and keeps only the main content region.
package scan

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fwojciec/pagemark"
)

// rawTextElements hold text that is never parsed for tags.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// Tokenizer turns characters into a flat sequence of tag events. Text
// between tags is never emitted on its own; it becomes the Content of the
// tag that follows it. The zero value is ready to use.
type Tokenizer struct {
	pending []rune
	tags    []pagemark.Tag

	// comment is the index in pending where the open "<!--" starts.
	// Only meaningful while inComm is set.
	comment int
	inComm  bool

	// rawText names the open script or style element, if any.
	rawText string

	// open is one past the index of the most recent '<' in pending, or 0.
	open int

	strays int
}

// NewTokenizer returns an empty Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Feed consumes one character.
func (t *Tokenizer) Feed(r rune) {
	t.pending = append(t.pending, r)
	if r == '<' {
		t.open = len(t.pending)
	}

	if !t.inComm && t.rawText == "" && r == '-' && t.endsWith("<!--") {
		t.inComm = true
		t.comment = len(t.pending) - 4
		return
	}
	if r != '>' {
		return
	}

	if t.inComm {
		if !t.endsWith("-->") || len(t.pending)-t.comment < 7 {
			return
		}
		start := t.comment
		t.inComm = false
		t.emit(start, pagemark.Tag{Name: "!--", Door: pagemark.SelfClosing})
		return
	}

	start := t.lastOpen()
	if start < 0 {
		if t.rawText == "" {
			t.strays++
		}
		return
	}
	if t.rawText != "" && !runesHaveFoldPrefix(t.pending[start+1:], "/"+t.rawText) {
		return
	}
	body := string(t.pending[start+1 : len(t.pending)-1])
	if !startsTag(body) {
		return
	}
	if openQuote(body) {
		return
	}

	tag, ok := parseTag(body)
	if !ok {
		return
	}
	t.emit(start, tag)

	switch {
	case tag.Door == pagemark.Opening && rawTextElements[tag.Name]:
		t.rawText = tag.Name
	case tag.Door == pagemark.Closing && tag.Name == t.rawText:
		t.rawText = ""
	}
}

// FeedString feeds every character of s.
func (t *Tokenizer) FeedString(s string) {
	for _, r := range s {
		t.Feed(r)
	}
}

// ReadFrom feeds characters from r until EOF. Invalid UTF-8 is fed as
// U+FFFD.
func (t *Tokenizer) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	var n int64
	for {
		ch, size, err := br.ReadRune()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n += int64(size)
		t.Feed(ch)
	}
}

// Tags returns the tag events completed so far.
func (t *Tokenizer) Tags() []pagemark.Tag {
	return t.tags
}

// Diagnostics describes input the tokenizer had to absorb.
func (t *Tokenizer) Diagnostics() []string {
	var out []string
	if t.strays > 0 {
		out = append(out, fmt.Sprintf("absorbed %d '>' without a matching '<'", t.strays))
	}
	if t.inComm {
		out = append(out, "unterminated comment at end of input")
	}
	return out
}

// emit completes a tag whose '<' sits at pending[start]. The text before it
// becomes the tag's content.
func (t *Tokenizer) emit(start int, tag pagemark.Tag) {
	tag.Content, _ = pagemark.CollapseWhitespace(string(t.pending[:start]))
	t.tags = append(t.tags, tag)
	t.pending = t.pending[:0]
	t.open = 0
}

func (t *Tokenizer) endsWith(s string) bool {
	rs := []rune(s)
	if len(t.pending) < len(rs) {
		return false
	}
	tail := t.pending[len(t.pending)-len(rs):]
	for i := range rs {
		if tail[i] != rs[i] {
			return false
		}
	}
	return true
}

// lastOpen returns the index of the most recent '<' before the final
// character, or -1.
func (t *Tokenizer) lastOpen() int {
	if t.open == 0 || t.open == len(t.pending) {
		return -1
	}
	return t.open - 1
}

// parseTag classifies a tag body (the text between '<' and '>').
func parseTag(body string) (pagemark.Tag, bool) {
	tag := pagemark.Tag{Door: pagemark.Opening}
	switch {
	case strings.HasPrefix(body, "/"):
		tag.Door = pagemark.Closing
		body = body[1:]
	case strings.HasSuffix(body, "/"):
		tag.Door = pagemark.SelfClosing
		body = body[:len(body)-1]
	}

	fields := splitFields(body)
	if len(fields) == 0 {
		return tag, false
	}
	tag.Name = strings.ToLower(fields[0])
	if tag.Door != pagemark.Closing && len(fields) > 1 {
		tag.Attributes = fields[1:]
	}
	return tag, true
}

// splitFields splits s on whitespace that is not inside a quoted value.
func splitFields(s string) []string {
	var fields []string
	var cur strings.Builder
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

// openQuote reports whether an attribute value quote is still open at the
// end of body, meaning the '>' belongs to the value.
func openQuote(body string) bool {
	var quote rune
	for _, r := range body {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		}
	}
	return quote != 0
}

// startsTag reports whether body can begin a tag, so that text such as
// "a < b > c" stays text.
func startsTag(body string) bool {
	for _, r := range body {
		return unicode.IsLetter(r) || r == '/' || r == '!' || r == '?'
	}
	return false
}

func runesHaveFoldPrefix(rs []rune, prefix string) bool {
	if len(rs) < len(prefix) {
		return false
	}
	return strings.EqualFold(string(rs[:len(prefix)]), prefix)
}
