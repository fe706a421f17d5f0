package config

import (
	"fmt"
	"net/url"
	"strings"
)

const maxRedirectLimit = 20

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Source.AliasPath == "" {
		if err := validateURL(c.Source.AliasURL); err != nil {
			return fmt.Errorf("source.alias_url: %w", err)
		}
	}
	if err := validateURL(c.Source.APIBaseURL); err != nil {
		return fmt.Errorf("source.api_base_url: %w", err)
	}

	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0 (got %s)", c.HTTP.Timeout)
	}
	if c.HTTP.MaxRedirects < 0 || c.HTTP.MaxRedirects > maxRedirectLimit {
		return fmt.Errorf("http.max_redirects must be within [0, %d] (got %d)", maxRedirectLimit, c.HTTP.MaxRedirects)
	}

	if strings.TrimSpace(c.Language.Preferred) == "" {
		return fmt.Errorf("language.preferred is required")
	}

	if !isJSIdentifier(c.Output.SidecarVariable) {
		return fmt.Errorf("output.sidecar_variable %q is not a valid identifier", c.Output.SidecarVariable)
	}

	switch c.Render.SourceMode {
	case "file", "http":
	default:
		return fmt.Errorf("render.source_mode must be file or http (got %q)", c.Render.SourceMode)
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (got %q)", raw)
	}
	return nil
}

func isJSIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
