package healthcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/text/message"
)

// MaxRedirects is the number of redirects followed before giving up.
const MaxRedirects = 5

// Result holds the outcome of a health check.
type Result struct {
	URL        *url.URL // Final URL, after redirects.
	StatusCode int
	Body       string
	Redirects  int  // Number of followed redirects.
	AuthWall   bool // Whether the response looks like a login wall.
}

func noFollow(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

// NewClient creates an HTTP client which does not follow redirects by
// itself. A zero timeout means no timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:       timeout,
		CheckRedirect: noFollow,
	}
}

// Checker performs health checks, following redirects one at a time.
type Checker struct {
	client  *http.Client
	matcher AuthWallMatcher
	printer *message.Printer
	out     io.Writer
	logger  log.Logger
}

// NewChecker creates a checker using the given client, which gets its
// redirect policy replaced. Progress and results are written to out.
func NewChecker(c *http.Client, m AuthWallMatcher, p *message.Printer, out io.Writer, l log.Logger) *Checker {
	hc := *c
	hc.CheckRedirect = noFollow

	if m == nil {
		m = AuthWallMatchers{}
	}
	if p == nil {
		p = NewPrinter(DefaultLocale)
	}

	return &Checker{
		client:  &hc,
		matcher: m,
		printer: p,
		out:     out,
		logger:  l,
	}
}

// fetch issues a GET request and reads the whole response body.
func (c *Checker) fetch(ctx context.Context, u string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, &NetworkError{URL: u, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, &NetworkError{URL: u, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			level.Warn(c.logger).Log("during", "closing response body", "url", u, "err", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &NetworkError{URL: u, Err: err}
	}

	return resp, body, nil
}

// Check runs the health check against the target URL.
//
// Redirect responses carrying a Location header are followed, up to
// MaxRedirects of them. The first other response is the terminal one: its
// status and body are printed, followed by the login wall hint if needed.
func (c *Checker) Check(ctx context.Context, target string) (*Result, error) {
	u := target

	for redirects := 0; ; redirects++ {
		if redirects > MaxRedirects {
			return nil, fmt.Errorf("%w: more than %d followed", ErrTooManyRedirects, MaxRedirects)
		}

		level.Debug(c.logger).Log("status", "requesting", "hop", redirects, "url", u)
		resp, body, err := c.fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		level.Debug(c.logger).Log("status", "response received", "hop", redirects, "code", resp.StatusCode, "size", len(body))

		if loc := resp.Header.Get("Location"); loc != "" && resp.StatusCode >= 300 && resp.StatusCode < 400 {
			next, err := resp.Location()
			if err != nil {
				return nil, &NetworkError{URL: u, Err: fmt.Errorf("invalid redirect location %q: %w", loc, err)}
			}
			fmt.Fprintf(c.out, "Redirect %d -> %s\n", resp.StatusCode, next)
			u = next.String()
			continue
		}

		res := &Result{
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Redirects:  redirects,
		}
		res.AuthWall = c.matcher.MatchResult(res)

		fmt.Fprintln(c.out, "Status:", res.StatusCode)
		fmt.Fprintln(c.out, "Body:", res.Body)
		if res.AuthWall {
			fmt.Fprintln(c.out, c.printer.Sprintf(msgAuthWallHint))
		}

		return res, nil
	}
}
