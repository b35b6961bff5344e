// Package scrape retrieves therapist website text for enrichment. Network
// failures never cross the package boundary as errors: a page either comes
// back as text or as "no content".
package scrape

import "context"

// Page holds retrieved website content. Text is the markdown-ish extracted
// content fed to the signal extractors; HTML is the raw markup kept for the
// profile-image scan.
type Page struct {
	URL  string
	Text string
	HTML string
}

// Retriever produces page text for a URL within a bounded time. The second
// return value is false when no content could be retrieved for any reason
// (timeout, block, error status, unparsable body).
type Retriever interface {
	Retrieve(ctx context.Context, url string) (*Page, bool)
}

// Prober checks URL reachability. Used only to decide whether a website
// field should be cleared, never to gate the pipeline.
type Prober interface {
	Probe(ctx context.Context, url string) bool
}
