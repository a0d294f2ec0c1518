package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWatch()
	c.normalizeNotifications()
	if err := c.normalizeAudio(); err != nil {
		return err
	}
	c.normalizeBrowser()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatch() {
	c.Watch.PageURL = strings.TrimSpace(c.Watch.PageURL)
	if c.Watch.PageURL == "" {
		if value, ok := os.LookupEnv("LOOKOUT_PAGE_URL"); ok {
			c.Watch.PageURL = strings.TrimSpace(value)
		}
	}
	c.Watch.WelcomeURL = strings.TrimSpace(c.Watch.WelcomeURL)
	if c.Watch.EmptyStateLabel == "" {
		c.Watch.EmptyStateLabel = defaultEmptyStateLabel
	}
	if c.Watch.PollInterval <= 0 {
		c.Watch.PollInterval = defaultPollInterval
	}
	if c.Watch.RequestTimeout <= 0 {
		c.Watch.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeAudio() error {
	c.Audio.Player = strings.TrimSpace(c.Audio.Player)
	if c.Audio.Player == "" {
		c.Audio.Player = defaultPlayer
	}
	if strings.TrimSpace(c.Audio.SoundDir) == "" {
		c.Audio.SoundDir = defaultSoundDir
	}
	var err error
	if c.Audio.SoundDir, err = expandPath(c.Audio.SoundDir); err != nil {
		return fmt.Errorf("audio.sound_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBrowser() {
	c.Browser.Opener = strings.TrimSpace(c.Browser.Opener)
	if c.Browser.Opener == "" {
		c.Browser.Opener = defaultOpener
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
