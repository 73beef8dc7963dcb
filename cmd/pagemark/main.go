package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/fs"
	pmhttp "github.com/fwojciec/pagemark/http"
	"github.com/fwojciec/pagemark/rod"
	pmslog "github.com/fwojciec/pagemark/slog"
	"github.com/fwojciec/pagemark/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" source.
	Stdin io.Reader

	// SQLite database opened for archive commands.
	DB *sqlite.DB

	// Fetcher used for web sources, closed by Close.
	Fetcher pagemark.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Fetcher != nil {
		err = m.Fetcher.Close()
	}
	if m.DB != nil {
		if cerr := m.DB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemark"),
		kong.Description("Extract the main content of HTML pages as Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{
			"default_db":         defaultDBPath(),
			"default_user_agent": pmhttp.DefaultUserAgent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagemark --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)

	if strings.HasPrefix(kongCtx.Command(), "archive") {
		m.DB = sqlite.NewDB(cli.Archive.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set PAGEMARK_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cli.Archive.DB, err)
		}
		deps.Pages = sqlite.NewPageService(m.DB)
		return kongCtx.Run(deps)
	}

	var web pagemark.Fetcher
	if cli.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout), rod.WithConfig(cli.BrowserConfig()))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		web = f
	} else {
		web = pmhttp.NewFetcher(pmhttp.WithTimeout(cli.Timeout), pmhttp.WithUserAgent(cli.UserAgent))
	}
	m.Fetcher = web

	files := fs.NewFetcher()
	if m.Stdin != nil {
		files.Stdin = m.Stdin
	}

	deps.Fetcher = pmslog.NewLoggingFetcher(&SourceFetcher{Web: web, Files: files}, deps.Logger)
	deps.Sitemaps = pmslog.NewLoggingSitemapService(pmhttp.NewSitemapService(nil), deps.Logger)

	return kongCtx.Run(deps)
}

// newLogger returns a debug logger on w when verbose, otherwise a logger
// that discards everything.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagemark.db"
	}
	dir := filepath.Join(home, ".pagemark")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagemark.db")
}

// SourceFetcher routes http and https URLs to Web and everything else,
// including "-" and file:// URLs, to Files.
type SourceFetcher struct {
	Web   pagemark.Fetcher
	Files pagemark.Fetcher
}

// Fetch retrieves source from the matching fetcher.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if IsWebURL(source) {
		return f.Web.Fetch(ctx, source)
	}
	return f.Files.Fetch(ctx, source)
}

// Close is a no-op; the underlying fetchers are owned by the caller.
func (f *SourceFetcher) Close() error {
	return nil
}

// IsWebURL reports whether source is an http or https URL.
func IsWebURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
