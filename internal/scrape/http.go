package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/config"
)

// HTTPRetriever fetches pages over plain HTTP and converts them to
// markdown. It implements both Retriever and Prober.
type HTTPRetriever struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewHTTPRetriever creates a retriever from scrape configuration.
func NewHTTPRetriever(cfg config.ScrapeConfig) *HTTPRetriever {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 512 * 1024
	}
	return &HTTPRetriever{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: cfg.UserAgent,
		maxBody:   maxBody,
	}
}

// Retrieve fetches a URL and extracts its text. Every failure mode
// degrades to (nil, false).
func (h *HTTPRetriever) Retrieve(ctx context.Context, targetURL string) (*Page, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, false
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		zap.L().Debug("scrape: fetch failed", zap.String("url", targetURL), zap.Error(err))
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody))
	if err != nil {
		zap.L().Debug("scrape: read failed", zap.String("url", targetURL), zap.Error(err))
		return nil, false
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		zap.L().Debug("scrape: blocked",
			zap.String("url", targetURL),
			zap.String("type", string(blockType)),
		)
		return nil, false
	}
	if resp.StatusCode >= 400 {
		zap.L().Debug("scrape: error status",
			zap.String("url", targetURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, false
	}
	if len(body) < 100 {
		return nil, false
	}

	html := string(body)
	text, err := htmltomarkdown.ConvertString(html)
	if err != nil || strings.TrimSpace(text) == "" {
		text = stripHTML(html)
	}
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	return &Page{URL: targetURL, Text: text, HTML: html}, true
}

// Probe checks URL reachability with a HEAD request inside the given
// timeout.
func (h *HTTPRetriever) Probe(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < 400
}

// stripHTML is the fallback when markdown conversion fails: drop
// script/style/nav/footer blocks, strip tags, decode common entities,
// collapse whitespace.
func stripHTML(html string) string {
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	html = regexp.MustCompile(`<[^>]+>`).ReplaceAllString(html, " ")

	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	html = regexp.MustCompile(`[ \t]+`).ReplaceAllString(html, " ")
	html = regexp.MustCompile(`\n{3,}`).ReplaceAllString(html, "\n\n")

	return strings.TrimSpace(html)
}
