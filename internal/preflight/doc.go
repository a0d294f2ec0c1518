// Package preflight provides readiness checks for the filesystem paths,
// external binaries, and the watched page that Lookout depends on.
//
// The daemon runs RunAll once at startup to surface broken configuration
// early, and the CLI "lookout status" command reuses the individual check
// functions to display service health.
package preflight
