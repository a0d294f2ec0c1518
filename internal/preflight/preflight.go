package preflight

import (
	"context"

	"lookout/internal/config"
	"lookout/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDiskSpace("State disk space", cfg.Paths.StateDir))
	results = append(results, CheckPage(ctx, cfg.Watch.PageURL))

	return results
}

// CheckSystemDeps evaluates the external binaries Lookout shells out to.
// Both the daemon and the CLI status command use this to avoid duplicating
// the requirements list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Audio player",
			Command:     cfg.Audio.Player,
			Description: "Plays alert sounds",
			Optional:    true,
		},
		{
			Name:        "Browser opener",
			Command:     cfg.Browser.Opener,
			Description: "Opens the watched and welcome pages",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
