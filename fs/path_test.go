package fs_test

import (
	"testing"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "simple path", url: "https://example.com/docs/api/users", want: "docs/api/users.md"},
		{name: "trailing slash becomes index", url: "https://example.com/docs/", want: "docs/index.md"},
		{name: "root path becomes index", url: "https://example.com/", want: "index.md"},
		{name: "root without trailing slash", url: "https://example.com", want: "index.md"},
		{name: "ignores query string", url: "https://example.com/docs/api?version=2", want: "docs/api.md"},
		{name: "ignores fragment", url: "https://example.com/docs/api#section", want: "docs/api.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()

		_, err := fs.URLToPath("https://example.com/../../../etc/passwd")

		require.Error(t, err)
		assert.Equal(t, pagemark.EINVALID, pagemark.ErrorCode(err))
		assert.Contains(t, err.Error(), "path traversal")
	})
}
