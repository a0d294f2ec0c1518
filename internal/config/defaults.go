package config

const (
	defaultStateDir        = "~/.local/share/lookout"
	defaultLogDir          = "~/.local/share/lookout/logs"
	defaultSoundDir        = "~/.local/share/lookout/sounds"
	defaultPollInterval    = 30
	defaultRequestTimeout  = 10
	defaultNtfyTimeout     = 10
	defaultEmptyStateLabel = "Lookout"
	defaultPlayer          = "lookout-player"
	defaultOpener          = "xdg-open"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns the repository default configuration. Callers typically
// overlay a TOML file on top via Load.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Watch: Watch{
			EmptyStateLabel: defaultEmptyStateLabel,
			PollInterval:    defaultPollInterval,
			RequestTimeout:  defaultRequestTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Audio: Audio{
			Player:   defaultPlayer,
			SoundDir: defaultSoundDir,
		},
		Browser: Browser{
			Opener: defaultOpener,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
