package healthcheck

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DefaultLoginMarker is the body substring found on Google sign-in pages.
const DefaultLoginMarker = "ServiceLogin"

// Config holds the optional file configuration.
type Config struct {
	LoginMarkers []string `toml:"login_markers"` // Body substrings revealing a login wall.
	LoginPaths   []string `toml:"login_paths"`   // Final URL path patterns revealing a login wall.
}

// DefaultConfig returns the configuration used without a configuration file.
func DefaultConfig() Config {
	return Config{
		LoginMarkers: []string{DefaultLoginMarker},
	}
}

// LoadConfig decodes the TOML file at path over the default configuration.
// An empty path returns the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding configuration: %w", err)
	}

	return cfg, nil
}
