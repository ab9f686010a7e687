// Package healthcheck checks the health endpoint of a Google Apps Script web
// app, following redirects by hand and spotting Google login walls.
package healthcheck

import (
	"strings"
)

// HealthPath is appended to the base URL to build the target URL.
const HealthPath = "/health"

// ResolveTargetURL builds the health check URL from a raw base URL.
//
// Surrounding whitespace is trimmed and exactly one trailing slash is
// stripped before HealthPath is appended. A blank base URL yields
// ErrMissingBaseURL.
func ResolveTargetURL(rawBaseURL string) (string, error) {
	base := strings.TrimSpace(rawBaseURL)
	if base == "" {
		return "", ErrMissingBaseURL
	}

	return strings.TrimSuffix(base, "/") + HealthPath, nil
}
