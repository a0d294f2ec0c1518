package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.PageURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/lookout/config.toml"
		}
		return fmt.Errorf("watch.page_url is required. Set LOOKOUT_PAGE_URL env var or edit %s (create with 'lookout config init')", defaultPath)
	}
	if err := validateHTTPURL("watch.page_url", c.Watch.PageURL); err != nil {
		return err
	}
	if c.Watch.WelcomeURL != "" {
		if err := validateHTTPURL("watch.welcome_url", c.Watch.WelcomeURL); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Watch.EmptyStateLabel) == "" {
		return errors.New("watch.empty_state_label must not be blank")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}

func validateHTTPURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL", field)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", field)
	}
	return nil
}
