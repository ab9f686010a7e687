// Package testutils provides helpers shared by tests.
package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// AssertError returns a failure message if the presence of err does not
// match expectError, or an empty string.
func AssertError(t testing.TB, err error, expectError bool) string {
	t.Helper()

	if expectError && err == nil {
		return "expected an error, got nil"
	}
	if !expectError && err != nil {
		return fmt.Sprintf("unexpected error: %v", err)
	}

	return ""
}

type logWriter struct {
	tb testing.TB
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

// NewTestLogger creates a logger writing to the test log.
func NewTestLogger(tb testing.TB) log.Logger {
	return level.NewFilter(log.NewLogfmtLogger(&logWriter{tb}), level.AllowDebug())
}

// RedirectChain is a test server answering with a given number of redirects
// before a final response.
type RedirectChain struct {
	*httptest.Server

	Hops       int    // Number of redirects served before the final response.
	Status     int    // Status of the final response.
	Body       string // Body of the final response.
	RedirectTo func(hop int) string

	requests atomic.Int32
}

// NewRedirectChain starts a redirect chain server. Each redirect points to
// /hop/<n> on the same server.
func NewRedirectChain(hops, status int, body string) *RedirectChain {
	return NewRedirectChainTo(nil, hops, status, body)
}

// NewRedirectChainTo starts a redirect chain server whose redirects point to
// the locations returned by to.
func NewRedirectChainTo(to func(hop int) string, hops, status int, body string) *RedirectChain {
	rc := &RedirectChain{
		Hops:       hops,
		Status:     status,
		Body:       body,
		RedirectTo: to,
	}
	rc.Server = httptest.NewServer(http.HandlerFunc(rc.serveHTTP))
	return rc
}

// Requests returns the number of requests received so far.
func (rc *RedirectChain) Requests() int {
	return int(rc.requests.Load())
}

func (rc *RedirectChain) serveHTTP(w http.ResponseWriter, _ *http.Request) {
	hop := int(rc.requests.Add(1))

	if hop <= rc.Hops {
		loc := fmt.Sprintf("/hop/%d", hop)
		if rc.RedirectTo != nil {
			loc = rc.RedirectTo(hop)
		}
		w.Header().Set("Location", loc)
		w.WriteHeader(http.StatusFound)
		fmt.Fprintf(w, "redirect %d", hop)
		return
	}

	w.WriteHeader(rc.Status)
	fmt.Fprint(w, rc.Body)
}
