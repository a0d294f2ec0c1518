// Package audio manages the singleton playback surface.
//
// The surface is an external player helper process that renders alert sounds;
// it receives one JSON play request per line on stdin. The Manager guards
// surface creation: concurrent Ensure calls coalesce onto a single in-flight
// creation, and the in-flight slot is cleared on success and failure alike so
// a later call may retry after an error.
package audio
