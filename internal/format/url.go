package format

import "strings"

// AbsoluteURL resolves a backend media path against the API origin.
// Absolute, data: and blob: URLs pass through unchanged. The origin loses
// any trailing slash and /api suffix because static and media files are
// served from the backend root, outside the API prefix.
func AbsoluteURL(origin, raw string) string {
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(raw, "data:") || strings.HasPrefix(raw, "blob:") {
		return raw
	}
	base := strings.TrimRight(origin, "/")
	base = strings.TrimSuffix(base, "/api")
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return base + raw
}
