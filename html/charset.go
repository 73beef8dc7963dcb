package html

import (
	"io"

	"github.com/fwojciec/pagemark"
	"golang.org/x/net/html/charset"
)

// NewReader returns a reader that decodes r to UTF-8. The encoding is
// taken from contentType when it names one, otherwise it is sniffed from
// the first bytes of the document.
func NewReader(r io.Reader, contentType string) (io.Reader, error) {
	dr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, pagemark.Errorf(pagemark.EINVALID, "unsupported encoding %q: %v", contentType, err)
	}
	return dr, nil
}
