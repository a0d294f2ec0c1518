// Package monitor watches the configured page's title for new items.
//
// A poll loop fetches the page and extracts its <title>; every observation
// flows through HandleTitleUpdate, which gates on the watched URL and load
// completion, diffs the parenthesized item count against the persisted
// baseline, always advances the baseline, and dispatches a notification when
// the count increased.
//
// The baseline read and write are separate store operations. Overlapping
// updates can both diff against the same stale baseline; see the package
// tests for the documented interleaving.
package monitor
