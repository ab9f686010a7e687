package healthcheck

import (
	"errors"
	"fmt"
	"io"
	"net/url"
)

// BaseURLEnvVar names the environment variable holding the base URL.
const BaseURLEnvVar = "GAS_WEBAPP_URL"

var (
	// ErrMissingBaseURL is returned when no base URL is configured.
	ErrMissingBaseURL = errors.New("missing " + BaseURLEnvVar)
	// ErrTooManyRedirects is returned when the redirect bound is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrUnhealthy is returned when the health payload does not report a
	// healthy service.
	ErrUnhealthy = errors.New("unhealthy service")
)

// NetworkError reports a transport level failure.
type NetworkError struct {
	URL string
	Err error
}

// Error implements error. Only the underlying message is returned, the
// request method and URL added by net/http are left out.
func (e *NetworkError) Error() string {
	var ue *url.Error
	if errors.As(e.Err, &ue) {
		return ue.Err.Error()
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ReportFailure writes the message matching err to w, usually the standard
// error stream.
func ReportFailure(w io.Writer, err error) {
	var ne *NetworkError

	switch {
	case errors.Is(err, ErrMissingBaseURL):
		zh := NewPrinter("zh-Hant")
		en := NewPrinter("en")
		fmt.Fprintf(w, "%s(%s)\n", zh.Sprintf(msgSetBaseURL, BaseURLEnvVar), en.Sprintf(msgSetBaseURL, BaseURLEnvVar))
		fmt.Fprintf(w, "  set %s=https://script.google.com/macros/s/xxx/exec\n", BaseURLEnvVar)
	case errors.Is(err, ErrTooManyRedirects):
		fmt.Fprintln(w, "Too many redirects")
	case errors.As(err, &ne):
		fmt.Fprintln(w, "Request failed:", ne.Error())
	case errors.Is(err, ErrUnhealthy):
		fmt.Fprintln(w, "Health check failed:", err)
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}
