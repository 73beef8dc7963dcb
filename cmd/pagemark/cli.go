package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemark"
	"github.com/fwojciec/pagemark/rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Fetcher retrieves sources named on the command line: URLs, file
	// paths and "-" for stdin.
	Fetcher  pagemark.Fetcher
	Sitemaps pagemark.SitemapService
	Pages    pagemark.PageService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool          `short:"v" help:"Log operations to stderr"`
	Browser   bool          `short:"b" help:"Render web pages in headless Chrome"`
	Timeout   time.Duration `short:"t" default:"30s" env:"PAGEMARK_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent string        `name:"user-agent" default:"${default_user_agent}" env:"PAGEMARK_USER_AGENT" help:"User-Agent sent with web requests"`

	Chrome       string `name:"chrome" env:"PAGEMARK_CHROME" help:"Chrome executable used by --browser"`
	RecycleAfter int64  `name:"recycle-after" default:"75" env:"PAGEMARK_RECYCLE_AFTER" help:"Pages one Chrome process renders before it is restarted"`

	Convert ConvertCmd `cmd:"" help:"Convert a page to Markdown"`
	Links   LinksCmd   `cmd:"" help:"List the link targets of a page"`
	Batch   BatchCmd   `cmd:"" help:"Convert many pages and store the results"`
	Archive ArchiveCmd `cmd:"" help:"Inspect the page archive"`
}

// BrowserConfig returns the Chrome settings selected by the global flags.
func (c *CLI) BrowserConfig() rod.Config {
	return rod.Config{
		Bin:          c.Chrome,
		UserAgent:    c.UserAgent,
		RecycleAfter: c.RecycleAfter,
	}
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Source    string `arg:"" help:"URL, file path, or - for stdin"`
	Engine    string `short:"e" default:"stream" enum:"stream,dom,reference" env:"PAGEMARK_ENGINE" help:"Conversion engine (stream, dom, reference)"`
	Extractor string `short:"x" default:"none" enum:"none,goquery,readability,trafilatura" help:"Narrow the page to its main content first (none, goquery, readability, trafilatura)"`
	NoTitle   bool   `name:"no-title" help:"Do not print the page title"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	Source   string `arg:"" help:"URL, file path, or - for stdin"`
	Resolve  bool   `short:"r" help:"Resolve links against the page URL and drop non-HTTP targets"`
	SameHost bool   `name:"same-host" help:"With --resolve, keep only links to the page's host"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs, or site URLs with --sitemap"`
	Sitemap     bool     `short:"s" help:"Expand each URL into the pages listed in its sitemap"`
	Out         string   `short:"o" type:"path" help:"Write Markdown files to this directory"`
	DB          string   `type:"path" help:"Archive pages in this SQLite database"`
	Engine      string   `short:"e" default:"stream" enum:"stream,dom,reference" env:"PAGEMARK_ENGINE" help:"Conversion engine (stream, dom, reference)"`
	Extractor   string   `short:"x" default:"none" enum:"none,goquery,readability,trafilatura" help:"Narrow pages to their main content first"`
	Concurrency int      `short:"c" default:"4" env:"PAGEMARK_CONCURRENCY" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"2" help:"Requests per second per host (0 disables)"`
	Retries     uint64   `default:"3" help:"Retries for transient fetch failures"`
	Filter      []string `short:"F" help:"Only process URLs matching this regex (repeatable)"`
	Exclude     []string `short:"X" help:"Skip URLs matching this regex (repeatable)"`
}

// ArchiveCmd groups the archive subcommands.
type ArchiveCmd struct {
	DB string `default:"${default_db}" env:"PAGEMARK_DB" type:"path" help:"SQLite database path"`

	List   ArchiveListCmd   `cmd:"" help:"List archived pages"`
	Show   ArchiveShowCmd   `cmd:"" help:"Print an archived page"`
	Delete ArchiveDeleteCmd `cmd:"" help:"Remove a page from the archive"`
}

// ArchiveListCmd is the "archive list" subcommand.
type ArchiveListCmd struct {
	Prefix string `short:"p" help:"Only list URLs starting with this prefix"`
	Limit  int    `short:"n" default:"50" help:"Maximum number of pages to list"`
	Offset int    `help:"Number of pages to skip"`
}

// ArchiveShowCmd is the "archive show" subcommand.
type ArchiveShowCmd struct {
	URL     string `arg:"" help:"Page URL"`
	NoTitle bool   `name:"no-title" help:"Do not print the page title"`
}

// ArchiveDeleteCmd is the "archive delete" subcommand.
type ArchiveDeleteCmd struct {
	URL string `arg:"" help:"Page URL"`
}
