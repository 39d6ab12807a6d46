package config

import (
	"strings"
	"time"
)

const (
	defaultAPITimeout     = 30 * time.Second
	defaultLoginTokenPath = "access_token"
	defaultLoginUserPath  = "user"
)

// APIConfig configures the client for the skills backend REST API.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "https://skills.example.com/api".
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds every outbound call. Zero or negative falls back to 30s.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// LoginTokenPath is a JMESPath expression selecting the bearer token
	// from the /auth/login response body.
	LoginTokenPath string `env:"LOGIN_TOKEN_PATH" envDefault:"access_token"`

	// LoginUserPath is a JMESPath expression selecting the user object
	// from the /auth/login response body.
	LoginUserPath string `env:"LOGIN_USER_PATH" envDefault:"user"`

	// ExtraHeaders are sent on every backend request ("Name:value" pairs).
	ExtraHeaders []string `env:"EXTRA_HEADERS" envDefault:"ngrok-skip-browser-warning:true" envSeparator:";"`
}

// Sanitize normalises API configuration values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
	if c.LoginTokenPath = strings.TrimSpace(c.LoginTokenPath); c.LoginTokenPath == "" {
		c.LoginTokenPath = defaultLoginTokenPath
	}
	if c.LoginUserPath = strings.TrimSpace(c.LoginUserPath); c.LoginUserPath == "" {
		c.LoginUserPath = defaultLoginUserPath
	}
}

// Headers returns ExtraHeaders as a name/value map. Malformed entries are skipped.
func (c *APIConfig) Headers() map[string]string {
	out := make(map[string]string, len(c.ExtraHeaders))
	for _, raw := range c.ExtraHeaders {
		name, value, ok := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		out[name] = strings.TrimSpace(value)
	}
	return out
}
