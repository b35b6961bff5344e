package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// Three ordered patterns for a headshot image: photo keyword in class/id
// before src, after src, or in alt text. First pattern with a match wins.
var imagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<img[^>]+(?:class|id)=["'][^"']*(?:profile|headshot|photo|avatar|therapist|portrait)[^"']*["'][^>]+src=["']([^"']+)["']`),
	regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["'][^>]+(?:class|id)=["'][^"']*(?:profile|headshot|photo|avatar|therapist|portrait)[^"']*["']`),
	regexp.MustCompile(`(?i)<img[^>]+alt=["'][^"']*(?:photo|headshot|profile)[^"']*["'][^>]+src=["']([^"']+)["']`),
}

// ProfileImage finds a profile/headshot image URL in raw HTML. A root-
// relative result is resolved against the source page's scheme and host.
func ProfileImage(html, pageURL string) string {
	if html == "" {
		return ""
	}
	for _, pattern := range imagePatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		imgURL := m[1]
		if strings.HasPrefix(imgURL, "/") {
			if parsed, err := url.Parse(pageURL); err == nil && parsed.Host != "" {
				imgURL = parsed.Scheme + "://" + parsed.Host + imgURL
			}
		}
		return imgURL
	}
	return ""
}
