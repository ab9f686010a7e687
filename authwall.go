package healthcheck

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AuthWallMatcher models a login wall matcher.
type AuthWallMatcher interface {
	MatchResult(*Result) bool
}

// StatusMatcher matches a terminal response status code (exact match).
type StatusMatcher int

// MatchResult implements AuthWallMatcher.
func (s StatusMatcher) MatchResult(r *Result) bool {
	return r.StatusCode == int(s)
}

// BodyMarker matches a substring of the terminal response body.
type BodyMarker string

// MatchResult implements AuthWallMatcher.
func (m BodyMarker) MatchResult(r *Result) bool {
	return m != "" && strings.Contains(r.Body, string(m))
}

// LoginPath matches the path of the final URL against a pattern.
type LoginPath struct {
	Pattern string
}

// Validate does pattern validation.
func (l *LoginPath) Validate() error {
	if _, err := doublestar.Match(l.Pattern, ""); err != nil {
		return fmt.Errorf("error validating login path pattern `%s`: %w", l.Pattern, err)
	}
	return nil
}

// MatchResult implements AuthWallMatcher.
func (l *LoginPath) MatchResult(r *Result) bool {
	if r.URL == nil {
		return false
	}

	// Ignore the error here, a pattern check is required before using this method.
	ok, _ := doublestar.Match(l.Pattern, r.URL.Path)
	return ok
}

// AuthWallMatchers represents a slice of auth wall matchers.
type AuthWallMatchers []AuthWallMatcher

// MatchResult implements AuthWallMatcher.
func (ms AuthWallMatchers) MatchResult(r *Result) (matched bool) {
	for _, m := range ms {
		if m.MatchResult(r) {
			matched = true
			break
		}
	}

	return
}

// NewAuthWallMatchers builds the auth wall matchers described by the
// configuration.
//
// A 302 reaching the matchers can only come without a Location header, every
// other 302 is followed as a redirect.
func NewAuthWallMatchers(cfg Config) (AuthWallMatchers, error) {
	ms := AuthWallMatchers{StatusMatcher(http.StatusFound)}

	for _, marker := range cfg.LoginMarkers {
		ms = append(ms, BodyMarker(marker))
	}

	for _, p := range cfg.LoginPaths {
		lp := &LoginPath{Pattern: p}
		if err := lp.Validate(); err != nil {
			return nil, err
		}
		ms = append(ms, lp)
	}

	return ms, nil
}
