package config

import (
	"fmt"
	"strings"
)

// GuardMode selects how the route guard decides which paths need a session.
type GuardMode string

const (
	// GuardModeStrict protects every path except an explicit public list.
	GuardModeStrict GuardMode = "strict"
	// GuardModeLegacy protects only paths starting with a configured prefix.
	GuardModeLegacy GuardMode = "legacy"
)

// UnmarshalText implements encoding.TextUnmarshaler for GuardMode.
func (g *GuardMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "strict", "legacy":
		*g = GuardMode(v)
		return nil
	default:
		return fmt.Errorf("invalid GuardMode: %q (valid options: strict, legacy)", v)
	}
}

// GuardConfig configures the route guard.
type GuardConfig struct {
	Mode GuardMode `env:"MODE" envDefault:"strict"`

	// ProtectedPrefixes are used in legacy mode.
	ProtectedPrefixes []string `env:"PROTECTED_PREFIXES" envDefault:"/dashboard,/manager,/admin,/skills,/users"`

	// PublicPaths are used in strict mode. Entries ending in "/" match as prefixes.
	PublicPaths []string `env:"PUBLIC_PATHS" envDefault:"/login,/register,/forgot-password,/auth/,/healthz,/static/,/designations"`
}

// Sanitize trims guard path lists and drops empty entries.
func (c *GuardConfig) Sanitize() {
	if c.Mode == "" {
		c.Mode = GuardModeStrict
	}
	c.ProtectedPrefixes = cleanPaths(c.ProtectedPrefixes)
	c.PublicPaths = cleanPaths(c.PublicPaths)
}

// TokenConfig enables optional verification of backend-issued access tokens
// against a JSON Web Key Set before they are stored.
type TokenConfig struct {
	JWKSURL  string `env:"JWKS_URL"`
	Issuer   string `env:"ISSUER"`
	Audience string `env:"AUDIENCE"`
}

// Sanitize trims token verification settings.
func (c *TokenConfig) Sanitize() {
	c.JWKSURL = strings.TrimSpace(c.JWKSURL)
	c.Issuer = strings.TrimSpace(c.Issuer)
	c.Audience = strings.TrimSpace(c.Audience)
}

// Enabled reports whether token verification is configured.
func (c *TokenConfig) Enabled() bool {
	return c.JWKSURL != ""
}

func cleanPaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, p)
	}
	return out
}
