package healthcheck_test

import (
	"errors"
	"testing"

	"github.com/libitemsflow/healthcheck"
)

func TestResolveTargetURL(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		expectURL string
		expectErr error
	}{
		{
			name:      "Unset",
			raw:       "",
			expectErr: healthcheck.ErrMissingBaseURL,
		},
		{
			name:      "Blank",
			raw:       " \t\n",
			expectErr: healthcheck.ErrMissingBaseURL,
		},
		{
			name:      "NoTrailingSlash",
			raw:       "https://example.com/exec",
			expectURL: "https://example.com/exec/health",
		},
		{
			name:      "TrailingSlash",
			raw:       "https://example.com/exec/",
			expectURL: "https://example.com/exec/health",
		},
		{
			name:      "OnlyOneSlashStripped",
			raw:       "https://example.com/exec//",
			expectURL: "https://example.com/exec//health",
		},
		{
			name:      "SurroundingWhitespace",
			raw:       "  https://script.google.com/macros/s/xxx/exec/ \n",
			expectURL: "https://script.google.com/macros/s/xxx/exec/health",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := healthcheck.ResolveTargetURL(tc.raw)

			if got, want := err, tc.expectErr; !errors.Is(got, want) {
				t.Errorf("error: want %v, got %v", want, got)
			}
			if got, want := u, tc.expectURL; got != want {
				t.Errorf("target URL: want %q, got %q", want, got)
			}
		})
	}
}
