package healthcheck

import (
	"encoding/json"
	"fmt"
	"io"
)

const maxErrorMessageLen = 180

// HealthData is the data member of a healthy envelope.
type HealthData struct {
	Status string `json:"status"`
}

// EnvelopeError is the error member of a failed envelope.
type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the JSON wrapper of every web app API response.
type Envelope struct {
	OK    bool           `json:"ok"`
	Data  *HealthData    `json:"data"`
	Error *EnvelopeError `json:"error"`
}

// Healthy reports whether the envelope describes a healthy service.
func (e *Envelope) Healthy() bool {
	return e.OK && e.Data != nil && e.Data.Status == "ok"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// VerifyPayload decodes a health response body, prints the verdict to w and
// returns an error wrapping ErrUnhealthy if the service is not healthy.
func VerifyPayload(w io.Writer, body string) error {
	var env Envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		env = Envelope{Error: &EnvelopeError{Code: "INVALID_JSON", Message: body}}
	}

	if env.Healthy() {
		fmt.Fprintln(w, "[PASS] Health endpoint")
		return nil
	}

	fmt.Fprintln(w, "[FAIL] Health endpoint")
	if env.Error == nil {
		return fmt.Errorf("%w: unexpected payload", ErrUnhealthy)
	}

	fmt.Fprintf(w, "       error.code=%s error.message=%s\n", env.Error.Code, truncate(env.Error.Message, maxErrorMessageLen))
	return fmt.Errorf("%w: %s", ErrUnhealthy, env.Error.Code)
}
