package store

// Defaults returns the settings seeded on a fresh install. The empty-state
// label becomes the initial title baseline so the first real observation
// diffs against the page's idle title. openSourcePage is deliberately not
// seeded; readers fall back to false until the user sets it.
func Defaults(emptyStateLabel string) map[string]string {
	return map[string]string{
		KeyAudioActive:      "true",
		KeyShowNotification: "true",
		KeyAudioFile:        DefaultAudioFile,
		KeyVolumePercent:    "100",
		KeyCounter:          "0",
		KeyLastTitle:        emptyStateLabel,
	}
}
