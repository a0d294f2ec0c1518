// Package daemon coordinates the page monitor, alert fan-out, and badge
// state behind a single-instance lock, and handles inbound control
// messages addressed to the background target.
package daemon
