package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagemark"
	"gopkg.in/yaml.v3"
)

// Ensure Store implements pagemark.PageStore at compile time.
var _ pagemark.PageStore = (*Store)(nil)

// Store writes pages as Markdown files with frontmatter. Pages are staged
// in a temporary directory and moved into place on Commit, so a failed run
// never leaves a half-written output directory behind.
type Store struct {
	baseDir string
	name    string
}

// NewStore creates a new Store. Files are staged in baseDir/name.tmp and
// moved to baseDir/name on Commit.
func NewStore(baseDir, name string) *Store {
	return &Store{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the final output directory.
func (s *Store) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// SavePage writes the page below the staging directory. Safe for
// concurrent use as long as pages have distinct URLs.
func (s *Store) SavePage(ctx context.Context, page *pagemark.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	data, err := FormatPage(page)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(data), 0644)
}

// Commit replaces the output directory with the staged pages.
func (s *Store) Commit() error {
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards the staged pages.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// frontmatter is the YAML header written above each page.
type frontmatter struct {
	Source  string `yaml:"source"`
	Title   string `yaml:"title"`
	Fetched string `yaml:"fetched,omitempty"`
	Hash    string `yaml:"hash"`
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *pagemark.Page) (string, error) {
	fm := frontmatter{
		Source: page.URL,
		Title:  page.Title,
		Hash:   fmt.Sprintf("%016x", xxhash.Sum64String(page.Content)),
	}
	if !page.FetchedAt.IsZero() {
		fm.Fetched = page.FetchedAt.Format("2006-01-02")
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", pagemark.Errorf(pagemark.EINTERNAL, "failed to encode frontmatter: %v", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(page.Content)
	return b.String(), nil
}
