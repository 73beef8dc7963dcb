// Package fs stores rendered pages as Markdown files and reads documents
// from the local filesystem.
package fs

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pagemark"
)

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagemark.Errorf(pagemark.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	for _, seg := range strings.Split(u.Path, "/") {
		if seg == ".." {
			return "", pagemark.Errorf(pagemark.EINVALID, "path traversal in %q", rawURL)
		}
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		return "index.md", nil
	case strings.HasSuffix(p, "/"):
		return p + "index.md", nil
	default:
		return p + ".md", nil
	}
}
