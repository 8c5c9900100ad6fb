package bot

import (
	"net/url"
	"strings"
)

// NoImage is the sentinel the image option uses to mean "no image".
const NoImage = "-"

// NormalizeURL coerces a bare domain to https. Empty input stays empty.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "https://" + raw
	}
	return raw
}

// NormalizeImage leaves the no-image sentinel untouched and normalizes
// everything else like a link.
func NormalizeImage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NoImage {
		return NoImage
	}
	return NormalizeURL(raw)
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
