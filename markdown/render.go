package markdown

import (
	"strings"

	"github.com/fwojciec/pagemark"
)

// deferred is a suffix waiting for the element entered at depth to finish.
type deferred struct {
	depth  int
	suffix string
}

// writer accumulates output and the deferred-suffix stack of one pass.
type writer struct {
	buf   strings.Builder
	stack []deferred
}

// enter writes prefix and defers suffix. Empty suffixes are not pushed;
// they would be discharged as no-ops.
func (w *writer) enter(depth int, prefix, suffix string) {
	w.buf.WriteString(prefix)
	if suffix != "" {
		w.stack = append(w.stack, deferred{depth: depth, suffix: suffix})
	}
}

// leave discharges every suffix deferred at depth or deeper, innermost
// first. It is called before anything else is written at depth.
func (w *writer) leave(depth int) {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if top.depth < depth {
			return
		}
		w.buf.WriteString(top.suffix)
		w.stack = w.stack[:len(w.stack)-1]
	}
}

func (w *writer) text(s string) {
	w.buf.WriteString(s)
}

func (w *writer) String() string {
	w.leave(0)
	return w.buf.String()
}

// RenderTags renders a depth-annotated tag stream as produced by the
// streaming filter. A tag's content is the text that preceded it, so it is
// written before the tag takes effect. An Opening tag at depth d first
// discharges whatever is still deferred at d or deeper, which only happens
// when an earlier sibling was never closed.
func RenderTags(tags []pagemark.Tag) string {
	var w writer
	skip := -1
	for _, tag := range tags {
		d := tag.Depth
		if skip >= 0 {
			if d > skip {
				continue
			}
			// Back at the level of the skipped element. Text before its
			// closing tag was inside it and is dropped with it.
			skip = -1
			if tag.Door == pagemark.Closing {
				w.leave(d)
				continue
			}
		}

		switch tag.Door {
		case pagemark.Opening, pagemark.SelfClosing:
			w.text(tag.Content)
			w.leave(d)
			prefix, suffix, skipped := Decorate(tag.Name, tag.Attr)
			if skipped {
				if tag.Door == pagemark.Opening {
					skip = d
				}
				continue
			}
			w.enter(d, prefix, suffix)
			if tag.Door == pagemark.SelfClosing {
				w.leave(d)
			}
		case pagemark.Closing:
			w.text(tag.Content)
			w.leave(d)
		}
	}
	return w.String()
}

// RenderTree renders the whole tree.
func RenderTree(tree *pagemark.Tree) string {
	return RenderNode(tree, pagemark.RootID)
}

// frame is a node waiting to be visited at depth.
type frame struct {
	id    pagemark.NodeID
	depth int
}

// RenderNode renders the subtree rooted at id. The walk uses an explicit
// stack, so document depth is bounded by memory rather than goroutine
// stack size.
func RenderNode(tree *pagemark.Tree, id pagemark.NodeID) string {
	var w writer
	stack := []frame{{id: id, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Everything deferred at this depth or deeper belongs to subtrees
		// that are now finished.
		w.leave(f.depth)

		n := tree.Node(f.id)
		switch n.Kind {
		case pagemark.TextNode:
			if s, ok := pagemark.CollapseWhitespace(n.Data); ok {
				w.text(s)
			}
			continue
		case pagemark.ElementNode:
			prefix, suffix, skip := Decorate(n.Name, func(key string) (string, bool) {
				return tree.Attr(f.id, key)
			})
			if skip {
				continue
			}
			w.enter(f.depth, prefix, suffix)
		case pagemark.DocumentNode:
		default:
			continue
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: n.Children[i], depth: f.depth + 1})
		}
	}
	return w.String()
}
