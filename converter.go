package pagemark

// Converter renders an HTML document as a Markdown page.
type Converter interface {
	// Convert extracts the title and body of html and renders the body as
	// Markdown. Malformed markup degrades the output and adds diagnostics;
	// it is never an error.
	Convert(html string) (*Page, error)
}

// LinkCollector lists the hyperlink targets of an HTML document.
type LinkCollector interface {
	// CollectLinks returns the raw href of every anchor that has one,
	// in document order, duplicates included.
	CollectLinks(html string) ([]string, error)
}
