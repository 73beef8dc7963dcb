package markdown

import "github.com/fwojciec/pagemark"

// CollectLinks returns the raw href of every anchor in the tree, in
// document order. Anchors without href are skipped; duplicates are kept.
func CollectLinks(tree *pagemark.Tree) []string {
	var links []string
	stack := []pagemark.NodeID{pagemark.RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := tree.Node(id)
		if n.Kind == pagemark.ElementNode && n.Name == "a" {
			if href, ok := tree.Attr(id, "href"); ok {
				links = append(links, href)
			}
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return links
}
